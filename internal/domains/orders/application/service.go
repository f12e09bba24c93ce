package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	notifydomain "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/domain"
	notifyports "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/ports"
	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/ports"
)

// Service orchestrates order intake: validation, pricing, atomic
// persistence, and the post-commit notification hand-off.
type Service struct {
	repo          ports.Repository
	notifications notifyports.Orchestrator
	logger        *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(repo ports.Repository, notifications notifyports.Orchestrator, opts ...Option) *Service {
	if notifications == nil {
		notifications = notifyports.NoopOrchestrator
	}
	s := &Service{repo: repo, notifications: notifications}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CalculatePrice(config domain.BannerConfig) (decimal.Decimal, error) {
	price, err := domain.Price(config)
	if err != nil {
		return decimal.Decimal{}, mapError(err)
	}
	return price, nil
}

// CreateOrder validates the whole batch before any write. The aggregate is
// persisted in one transaction by the repository; only after that commit
// does the notification orchestrator run, and its outcome never alters the
// returned order.
func (s *Service) CreateOrder(ctx context.Context, customer ports.Customer, contactNumber string, configs []domain.BannerConfig, files []domain.Upload) (*domain.Order, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrEmptyOrder)
	}
	if len(configs) != len(files) {
		return nil, fmt.Errorf("%w: %w: got %d configs and %d files", ErrInvalidInput, ErrItemFileMismatch, len(configs), len(files))
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(configs))
	for i, cfg := range configs {
		price, err := domain.Price(cfg)
		if err != nil {
			return nil, mapItemError(i, err)
		}
		cfg.CalculatedPrice = price
		items = append(items, domain.OrderItem{Config: cfg, Price: price})
		total = total.Add(price)
	}
	if total.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrNonPositiveTotal)
	}

	order, err := domain.NewOrder(customer.ID, contactNumber, total, items)
	if err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	// Best effort from here on: the order is committed, so a dispatch
	// failure is recorded and swallowed.
	if err := s.notifications.OrderCreated(ctx, buildNotification(saved, customer, files)); err != nil {
		s.logError(ctx, "order notification dispatch failed", err, slog.String("order.id", saved.ID))
	}

	return saved, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if status == "" || !status.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidStatus)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
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

func buildNotification(order *domain.Order, customer ports.Customer, files []domain.Upload) notifydomain.OrderNotification {
	summary := notifydomain.OrderSummary{
		OrderID:       order.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		ContactNumber: order.ContactNumber,
		TotalPrice:    order.TotalPrice,
	}
	for _, item := range order.Items {
		summary.Items = append(summary.Items, notifydomain.ItemSummary{
			WidthCm:    item.Config.WidthCm,
			HeightCm:   item.Config.HeightCm,
			Material:   string(item.Config.Material),
			Grommets:   item.Config.Grommets,
			Lamination: item.Config.Lamination,
			Price:      item.Price,
		})
	}
	attachments := make([]notifydomain.Attachment, 0, len(files))
	for _, file := range files {
		data, err := file.ReadAll()
		if err != nil {
			// Uploads are buffered by the transport; a read failure here
			// only costs the attachment, not the order.
			continue
		}
		attachments = append(attachments, notifydomain.Attachment{
			Filename:    file.Name(),
			ContentType: file.ContentType(),
			Data:        data,
		})
	}
	return notifydomain.OrderNotification{Summary: summary, Attachments: attachments}
}

var _ ports.Service = (*Service)(nil)
