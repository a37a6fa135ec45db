package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/issue-board/internal/events"
)

// NotificationService logs domain events as they happen. Delivery channels
// beyond the log are stubs for now.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIssueCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventIssueAssigned, n.handleEvent)
	n.dispatcher.Subscribe(events.EventIssueStatusChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventIssueDeleted, n.handleEvent)
	n.dispatcher.Subscribe(events.EventProjectCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventProjectDeleted, n.handleEvent)
}

func (n *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor", event.Actor.UserID),
		zap.String("role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload),
	)
	return nil
}
