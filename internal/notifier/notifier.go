package notifier

import (
	"context"
	"log"
	"os"

	"paritos.app/delivery/internal/entity"
)

// Emitter materializes a stored notification for its audience. The
// coordinator calls it fire-and-forget: a failed emit never fails the
// transition that produced the record.
type Emitter interface {
	Emit(ctx context.Context, notification entity.Notification) error
}

type LogEmitter struct {
	logger *log.Logger
}

func NewLogEmitter() *LogEmitter {
	return &LogEmitter{
		logger: log.New(os.Stdout, "notification: ", log.LstdFlags),
	}
}

func (e *LogEmitter) Emit(_ context.Context, notification entity.Notification) error {
	e.logger.Printf("[%s] order=%d %s", notification.Audience, notification.OrderID, notification.Message)
	return nil
}
