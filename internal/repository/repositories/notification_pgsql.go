package repositories

import (
	"context"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"
	"paritos.app/delivery/internal/entity"
)

// @migration
type Notification struct {
	ID       string `gorm:"primaryKey;size:36"`
	Audience string `gorm:"index"`
	OrderID  uint64
	Message  string
	Read     bool
	Date     time.Time
}

type NotificationRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewNotificationRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *NotificationRepo {
	return &NotificationRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *NotificationRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm)
}

func (s *NotificationRepo) BatchCreate(ctx context.Context, notifications []entity.Notification) error {

	if len(notifications) == 0 {
		return nil
	}

	rows := []Notification{}
	for _, n := range notifications {
		rows = append(rows, Notification{
			ID:       n.ID,
			Audience: string(n.Audience),
			OrderID:  n.OrderID,
			Message:  n.Message,
			Read:     n.Read,
			Date:     n.Date,
		})
	}

	if err := s.db(ctx).CreateInBatches(rows, 20).Error; err != nil {
		return persistenceError(err)
	}

	return nil
}

func (s *NotificationRepo) PaginatedFetchAll(ctx context.Context, audience entity.NotificationAudience, offset, limit int32) (*[]entity.Notification, error) {

	query := s.db(ctx).Model(&Notification{})
	if audience != "" {
		query = query.Where("audience = ?", string(audience))
	}

	rows := []Notification{}

	err := query.Order("date DESC").
		Limit(int(limit)).Offset(int(offset)).
		Find(&rows).Error
	if err != nil {
		return nil, persistenceError(err)
	}

	res := []entity.Notification{}
	for _, n := range rows {
		res = append(res, entity.Notification{
			ID:       n.ID,
			Audience: entity.NotificationAudience(n.Audience),
			OrderID:  n.OrderID,
			Message:  n.Message,
			Read:     n.Read,
			Date:     n.Date,
		})
	}

	return &res, nil
}

func (s *NotificationRepo) MarkRead(ctx context.Context, id string) error {

	res := s.db(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return persistenceError(res.Error)
	}

	if res.RowsAffected == 0 {
		return notFoundError("notification not found", nil)
	}

	return nil
}
