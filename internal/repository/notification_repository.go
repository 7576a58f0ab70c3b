package repository

import (
	"context"

	"hustlee-be/internal/entity"
	"hustlee-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository is kept model-level (no entity mapping) since
// notifications are write-once rows pushed straight to clients.
type NotificationRepository interface {
	GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error)
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUsersByRole(ctx context.Context, role string) ([]*entity.User, error)
}
