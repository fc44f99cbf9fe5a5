package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
}

// Create stores a new product, keyed by slug
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.slug", product.Slug),
		attribute.String("product.name", product.Name),
	)

	if err := product.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid product")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *product
	r.products[product.Slug] = &stored

	r.logger.DebugContext(ctx, "Product created in repository",
		slog.String("product_slug", product.Slug),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

// FindBySlug retrieves a product by slug
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindBySlug")
	defer span.End()

	span.SetAttributes(attribute.String("product.slug", slug))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[slug]
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_slug", slug),
		)
		return nil, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	found := *product
	return &found, nil
}

// FindAll retrieves all products, newest first
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		p := *product
		products = append(products, &p)
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].Slug < products[j].Slug
	})

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// IncrementViews bumps the view counter of a product
func (r *ProductRepository) IncrementViews(ctx context.Context, slug string) error {
	_, span := r.tracer.Start(ctx, "ProductRepository.IncrementViews")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[slug]
	if !exists {
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}
	product.Views++

	span.SetStatus(codes.Ok, "Views incremented")
	return nil
}
