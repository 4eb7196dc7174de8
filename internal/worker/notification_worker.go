package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/andreeesz17/inmobiliaria-service/internal/notify"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
)

// StartNotificationWorker registers event handlers and drains the notification
// hub, logging each delivery. Returns a stop function.
func StartNotificationWorker(notificationService *service.NotificationService, hub *notify.Hub, logger *zap.Logger) func() {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if hub == nil {
		return func() {}
	}

	ch, cancel := hub.Subscribe()
	ctx, stop := context.WithCancel(context.Background())
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-ch:
				if !ok {
					return
				}
				logger.Info("notification delivered",
					zap.String("kind", string(n.Kind)),
					zap.String("message", n.Message),
				)
			}
		}
	}()

	return func() {
		cancel()
		stop()
	}
}
