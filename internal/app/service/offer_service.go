package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OfferService lists running offers and adds their products to the cart
type OfferService struct {
	offers     domain.OfferRepository
	products   domain.ProductRepository
	cart       *CartService
	now        func() time.Time
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

func NewOfferService(
	offers domain.OfferRepository,
	products domain.ProductRepository,
	cart *CartService,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *OfferService {
	operations, _ := meter.Int64Counter(
		"storefront.offers.operations",
		metric.WithDescription("Total number of offer operations"),
	)

	return &OfferService{
		offers:     offers,
		products:   products,
		cart:       cart,
		now:        systemNow,
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

// List returns the offers running now, matched against the optional
// search term over their title, description and product names.
func (s *OfferService) List(ctx context.Context, query string) ([]*dto.OfferResponse, error) {
	ctx, span := s.tracer.Start(ctx, "OfferService.List")
	defer span.End()

	term := domain.NormalizeSearchTerm(query)
	span.SetAttributes(attribute.String("search.term", term))

	offers, err := s.list(ctx, term)
	recordOutcome(ctx, span, s.logger, s.operations, "list", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("offer.count", len(offers)))
	return offers, nil
}

func (s *OfferService) list(ctx context.Context, term string) ([]*dto.OfferResponse, error) {
	all, err := s.offers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	offers := make([]*dto.OfferResponse, 0, len(all))
	for _, offer := range all {
		if !offer.IsValid(now) {
			continue
		}
		products, err := s.offerProducts(ctx, offer)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(products))
		for i, p := range products {
			names[i] = p.Name
		}
		if !offer.Matches(term, names) {
			continue
		}
		offers = append(offers, dto.ToOfferResponse(offer, products))
	}
	return offers, nil
}

// AddToCart adds one unit of every product in a running offer to the cart
func (s *OfferService) AddToCart(ctx context.Context, sessionID, offerID string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "OfferService.AddToCart")
	defer span.End()

	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("offer.id", offerID),
	)

	offer, err := s.offers.FindByID(ctx, offerID)
	if err == nil && !offer.IsValid(s.now()) {
		err = domain.ErrOfferNotFound
	}
	var products []*domain.Product
	if err == nil {
		products, err = s.offerProducts(ctx, offer)
	}
	if err != nil {
		recordOutcome(ctx, span, s.logger, s.operations, "add_to_cart", err)
		return nil, err
	}

	cart, err := s.cart.AddProducts(ctx, sessionID, products)
	recordOutcome(ctx, span, s.logger, s.operations, "add_to_cart", err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Offer added to cart",
		slog.String("offer_id", offerID),
		slog.Int("products", len(products)),
	)
	return cart, nil
}

// offerProducts resolves the offer's active products, skipping slugs that
// no longer exist.
func (s *OfferService) offerProducts(ctx context.Context, offer *domain.Offer) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(offer.ProductSlugs))
	for _, slug := range offer.ProductSlugs {
		p, err := s.products.FindBySlug(ctx, slug)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.Active {
			products = append(products, p)
		}
	}
	return products, nil
}
