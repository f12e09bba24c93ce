package application

import (
	"context"
	"log/slog"

	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/ports"
)

// Service runs one notification through the dispatcher and converts the
// outcome into a recorded boolean. Transport failures stop here: they are
// logged, never propagated to the order path.
type Service struct {
	dispatcher ports.Dispatcher
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(dispatcher ports.Dispatcher, opts ...Option) *Service {
	s := &Service{dispatcher: dispatcher}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Notify reports whether the summary message reached the relay.
func (s *Service) Notify(ctx context.Context, notification domain.OrderNotification) bool {
	if s == nil || s.dispatcher == nil {
		return false
	}
	orderID := notification.Summary.OrderID
	if err := s.dispatcher.Dispatch(ctx, notification); err != nil {
		s.logError(ctx, "order notification failed", err, slog.String("order.id", orderID))
		return false
	}
	s.logInfo(ctx, "order notification sent",
		slog.String("order.id", orderID),
		slog.Int("attachments", len(notification.Attachments)))
	return true
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
