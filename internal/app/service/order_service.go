package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OrderService exposes the orders a session has checked out
type OrderService struct {
	orders     domain.OrderRepository
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

func NewOrderService(
	orders domain.OrderRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *OrderService {
	operations, _ := meter.Int64Counter(
		"storefront.orders.operations",
		metric.WithDescription("Total number of order lookups"),
	)

	return &OrderService{
		orders:     orders,
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

// List returns the session's orders, newest first
func (s *OrderService) List(ctx context.Context, sessionID string) ([]*dto.OrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	orders, err := s.orders.FindBySession(ctx, sessionID)
	recordOutcome(ctx, span, s.logger, s.operations, "list", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return dto.ToOrderResponseList(orders), nil
}

// Get returns one of the session's orders by number. Orders of other
// sessions are reported as not found.
func (s *OrderService) Get(ctx context.Context, sessionID, number string) (*dto.OrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Get")
	defer span.End()

	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("order.number", number),
	)

	order, err := s.orders.FindByNumber(ctx, number)
	if err == nil && order.SessionID != sessionID {
		err = domain.ErrOrderNotFound
	}
	recordOutcome(ctx, span, s.logger, s.operations, "read", err)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}
