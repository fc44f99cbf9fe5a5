package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles catalog browsing use cases
type ProductService struct {
	products          domain.ProductRepository
	categories        domain.CategoryRepository
	store             StoreSettings
	tracer            trace.Tracer
	logger            *slog.Logger
	catalogOperations metric.Int64Counter
	productViews      metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	store StoreSettings,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	catalogOperations, _ := meter.Int64Counter(
		"storefront.catalog.operations",
		metric.WithDescription("Total number of catalog operations"),
	)

	productViews, _ := meter.Int64Counter(
		"storefront.product.views.total",
		metric.WithDescription("Total number of product detail views"),
	)

	return &ProductService{
		products:          products,
		categories:        categories,
		store:             store,
		tracer:            tracer,
		logger:            logger,
		catalogOperations: catalogOperations,
		productViews:      productViews,
	}
}

// ListCategories returns active categories ordered for display
func (s *ProductService) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListCategories")
	defer span.End()

	categories, err := s.activeCategories(ctx, "")
	recordOutcome(ctx, span, s.logger, s.catalogOperations, "list_categories", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("category.count", len(categories)))
	return dto.ToCategoryResponseList(categories), nil
}

// SearchCategories returns active categories whose name contains the term
func (s *ProductService) SearchCategories(ctx context.Context, query string) ([]*dto.CategoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SearchCategories")
	defer span.End()

	term := domain.NormalizeSearchTerm(query)
	span.SetAttributes(attribute.String("search.term", term))

	categories, err := s.activeCategories(ctx, term)
	recordOutcome(ctx, span, s.logger, s.catalogOperations, "search_categories", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("category.count", len(categories)))
	return dto.ToCategoryResponseList(categories), nil
}

// ListProducts returns active products, newest first, filtered by an
// optional search term and category.
func (s *ProductService) ListProducts(ctx context.Context, query, category string) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	term := domain.NormalizeSearchTerm(query)
	span.SetAttributes(
		attribute.String("search.term", term),
		attribute.String("category.slug", category),
	)

	s.logger.InfoContext(ctx, "Listing products",
		slog.String("search", term),
		slog.String("category", category),
	)

	products, err := s.filter(ctx, func(p *domain.Product) bool {
		return (category == "" || p.CategorySlug == category) && p.Matches(term)
	}, 0)
	recordOutcome(ctx, span, s.logger, s.catalogOperations, "list", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	return dto.ToProductResponseList(products), nil
}

// Featured returns the featured products, up to the configured limit
func (s *ProductService) Featured(ctx context.Context) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Featured")
	defer span.End()

	products, err := s.filter(ctx, func(p *domain.Product) bool { return p.Featured }, s.store.FeaturedLimit)
	recordOutcome(ctx, span, s.logger, s.catalogOperations, "featured", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	return dto.ToProductResponseList(products), nil
}

// GetProduct returns an active product with related products from its
// category, counting the view.
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*dto.ProductDetailResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.slug", slug))

	product, err := s.Product(ctx, slug)
	if err == nil {
		err = s.products.IncrementViews(ctx, slug)
		product.Views++
	}
	if err != nil {
		recordOutcome(ctx, span, s.logger, s.catalogOperations, "read", err)
		return nil, err
	}
	s.productViews.Add(ctx, 1, metric.WithAttributes(attribute.String("category", product.CategorySlug)))

	related, err := s.filter(ctx, func(p *domain.Product) bool {
		return p.Slug != product.Slug && p.CategorySlug != "" && p.CategorySlug == product.CategorySlug
	}, s.store.RelatedProducts)
	recordOutcome(ctx, span, s.logger, s.catalogOperations, "read", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.Int("related.count", len(related)),
	)
	return &dto.ProductDetailResponse{
		Product: dto.ToProductResponse(product),
		Related: dto.ToProductResponseList(related),
	}, nil
}

// Product returns an active product by slug
func (s *ProductService) Product(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// filter returns active products accepted by keep, newest first. A
// positive limit caps the result.
func (s *ProductService) filter(ctx context.Context, keep func(*domain.Product) bool, limit int) ([]*domain.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if !p.Active || !keep(p) {
			continue
		}
		products = append(products, p)
		if limit > 0 && len(products) == limit {
			break
		}
	}
	return products, nil
}

func (s *ProductService) activeCategories(ctx context.Context, term string) ([]*domain.Category, error) {
	all, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, 0, len(all))
	for _, c := range all {
		if !c.Active {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(c.Name), term) {
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}
