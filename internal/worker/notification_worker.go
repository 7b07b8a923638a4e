package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/rental-service/internal/service"
)

// Notifier owns the asynchronous consumers fed by the event dispatcher.
type Notifier struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

// NewNotifier creates the worker around the notification service.
func NewNotifier(notifications *service.NotificationService, logger *zap.Logger) *Notifier {
	return &Notifier{notifications: notifications, logger: logger}
}

// Start subscribes the notification handlers to their event types.
func (n *Notifier) Start() {
	if n.notifications == nil {
		return
	}
	n.notifications.RegisterHandlers()
	n.logger.Info("notification consumers registered")
}
