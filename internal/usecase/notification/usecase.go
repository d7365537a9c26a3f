package notification

import (
	"context"

	paritos "paritos.app/delivery"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/repository/repositories"
)

type NotificationUseCase struct {
	NotificationRepo *repositories.NotificationRepo
}

func New(notifrepo *repositories.NotificationRepo) *NotificationUseCase {
	return &NotificationUseCase{
		NotificationRepo: notifrepo,
	}
}

func (uc *NotificationUseCase) PaginatedGetAll(ctx context.Context, audience entity.NotificationAudience, offset, limit int32) (*[]entity.Notification, error) {
	op := "NotificationUseCase.PaginatedGetAll"

	if audience != "" && audience != entity.AudienceCustomer && audience != entity.AudienceAdmin {
		return nil, &paritos.Error{Op: op, Code: paritos.EINVALID, Message: "unknown notification audience"}
	}

	notifications, err := uc.NotificationRepo.PaginatedFetchAll(ctx, audience, offset, limit)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return notifications, nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	op := "NotificationUseCase.MarkRead"

	if id == "" {
		return &paritos.Error{Op: op, Code: paritos.EINVALID, Message: "notification id is required"}
	}

	if err := uc.NotificationRepo.MarkRead(ctx, id); err != nil {
		return paritos.OpError(op, err)
	}

	return nil
}
