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

// ContactService stores contact form messages and newsletter subscriptions
type ContactService struct {
	repo       domain.ContactRepository
	links      ChatLinker
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

func NewContactService(
	repo domain.ContactRepository,
	links ChatLinker,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ContactService {
	operations, _ := meter.Int64Counter(
		"storefront.contact.operations",
		metric.WithDescription("Total number of contact and newsletter operations"),
	)

	return &ContactService{
		repo:       repo,
		links:      links,
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

// Submit stores the message and returns a chat link prefilled with it
func (s *ContactService) Submit(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.Submit")
	defer span.End()

	msg, err := domain.NewContactMessage(req.Name, req.Email, req.Phone, req.Subject, req.Message)
	if err == nil {
		err = s.repo.SaveMessage(ctx, msg)
	}
	recordOutcome(ctx, span, s.logger, s.operations, "submit", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("contact.id", msg.ID))
	s.logger.InfoContext(ctx, "Contact message received",
		slog.String("contact_id", msg.ID),
		slog.String("subject", msg.Subject),
	)

	return &dto.ContactResponse{
		ID:      msg.ID,
		ChatURL: s.links.Link(domain.ContactText(msg)),
	}, nil
}

// Subscribe adds the email to the newsletter
func (s *ContactService) Subscribe(ctx context.Context, req *dto.NewsletterRequest) (*dto.NewsletterResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.Subscribe")
	defer span.End()

	sub, err := domain.NewSubscription(req.Email)
	if err == nil {
		err = s.repo.Subscribe(ctx, sub)
	}
	recordOutcome(ctx, span, s.logger, s.operations, "subscribe", err)
	if err != nil {
		return nil, err
	}

	return &dto.NewsletterResponse{Email: sub.Email, Subscribed: true}, nil
}
