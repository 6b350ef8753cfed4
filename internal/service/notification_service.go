package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"go.uber.org/zap"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create stores a notification for a user. Called by other services
// and background jobs, never directly from a handler.
func (s *NotificationService) Create(ctx context.Context, req *domain.CreateNotificationRequest) (*domain.NotificationDTO, error) {
	notification := &domain.Notification{
		UserID:     req.UserID,
		Type:       string(req.Type),
		Title:      req.Title,
		Message:    req.Message,
		EntityID:   req.EntityID,
		EntityType: req.EntityType,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug("notification created",
		zap.String("userID", req.UserID),
		zap.String("type", string(req.Type)))

	dto := mapper.ToNotificationDTO(notification)
	return &dto, nil
}

// ListMine returns the current user's notifications, newest first
func (s *NotificationService) ListMine(ctx context.Context, page, pageSize int, unreadOnly bool, notificationType string) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userCtx.UserID, page, pageSize, unreadOnly, notificationType)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, len(notifications))
	for i := range notifications {
		dtos[i] = mapper.ToNotificationDTO(&notifications[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// MarkAsRead marks one notification read. Users can only touch their own.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notification.UserID != userCtx.UserID {
		return fmt.Errorf("%w: notificatie van een andere gebruiker", ErrPermissionDenied)
	}

	return s.notificationRepo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	return s.notificationRepo.MarkAllAsRead(ctx, userCtx.UserID)
}

func (s *NotificationService) CountUnread(ctx context.Context) (*domain.UnreadCountDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	count, err := s.notificationRepo.CountUnread(ctx, userCtx.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}
	return &domain.UnreadCountDTO{Count: count}, nil
}
