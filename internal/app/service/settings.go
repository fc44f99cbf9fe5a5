package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// StoreSettings are the business settings the services need
type StoreSettings struct {
	Name            string
	Currency        string
	DemoUserName    string
	NewUserName     string
	RelatedProducts int
	FeaturedLimit   int
}

// ChatLinker turns a message into an external chat URL
type ChatLinker interface {
	Link(message string) string
}

// operationResult classifies an error for the operations counters
func operationResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrOfferNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return "not_found"
	case isClientError(err):
		return "rejected"
	default:
		return "failure"
	}
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrEmptyCart) ||
		errors.Is(err, domain.ErrInvalidItem) ||
		errors.Is(err, domain.ErrQuantityLimit) ||
		errors.Is(err, domain.ErrInvalidFavorite) ||
		errors.Is(err, domain.ErrPasswordMismatch) ||
		errors.Is(err, domain.ErrNotLoggedIn) ||
		errors.Is(err, domain.ErrInvalidContact) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrAlreadySubscribed)
}

// recordOutcome closes out a span and bumps the operations counter.
// Failures caused by the caller are logged at WARN, everything else at ERROR.
func recordOutcome(ctx context.Context, span trace.Span, logger *slog.Logger, counter metric.Int64Counter, operation string, err error) {
	result := operationResult(err)
	counter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)

	if err == nil {
		span.SetStatus(codes.Ok, operation+" succeeded")
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if result == "failure" {
		logger.ErrorContext(ctx, "Operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.WarnContext(ctx, "Operation rejected",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

func systemNow() time.Time { return time.Now() }
