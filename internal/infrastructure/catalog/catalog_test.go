package catalog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestDefaultCatalogSeeds(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	repos := Repositories{
		Products:   memory.NewProductRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler)),
		Categories: memory.NewCategoryRepository(),
		Offers:     memory.NewOfferRepository(),
	}
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Seed(ctx, repos, now))

	products, err := repos.Products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(c.Products))
	assert.Equal(t, "ecg", products[0].Slug)

	ecg, err := repos.Products.FindBySlug(ctx, "ecg")
	require.NoError(t, err)
	assert.Equal(t, "diagnostic", ecg.CategorySlug)
	assert.InDelta(t, 13500, ecg.FinalPrice(), 1e-9)
	assert.True(t, ecg.Featured)

	categories, err := repos.Categories.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "diagnostic", categories[0].Slug)

	offer, err := repos.Offers.FindByID(ctx, "respiratory-week")
	require.NoError(t, err)
	assert.True(t, offer.IsValid(now))
	assert.Equal(t, domain.OfferPercentage, offer.Type)
}

func TestParseRejectsUnknownReferences(t *testing.T) {
	_, err := Parse([]byte(`
products:
  - slug: x
    name: X
    category: missing
`))
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = Parse([]byte(`
offers:
  - id: o
    products: [nope]
`))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = Parse([]byte("categories: {"))
	assert.Error(t, err)
}
