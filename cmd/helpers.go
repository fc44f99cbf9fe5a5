package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mrops-br/entity-storefront/internal/infrastructure/catalog"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/config"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/repository/memory"
)

// catalogRepos are the in-memory repositories the catalog is served from
type catalogRepos struct {
	products   *memory.ProductRepository
	categories *memory.CategoryRepository
	offers     *memory.OfferRepository
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadCatalog parses --catalog when given, the built-in catalog otherwise
func loadCatalog() (*catalog.Catalog, error) {
	if catalogFile == "" {
		return catalog.Default()
	}
	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", catalogFile, err)
	}
	return catalog.Parse(data)
}

func newCatalogRepos(ctx context.Context, logger *slog.Logger, products *memory.ProductRepository) (catalogRepos, error) {
	repos := catalogRepos{
		products:   products,
		categories: memory.NewCategoryRepository(),
		offers:     memory.NewOfferRepository(),
	}
	c, err := loadCatalog()
	if err != nil {
		return catalogRepos{}, err
	}
	err = c.Seed(ctx, catalog.Repositories{
		Products:   repos.products,
		Categories: repos.categories,
		Offers:     repos.offers,
	}, time.Now())
	if err != nil {
		return catalogRepos{}, fmt.Errorf("seeding catalog: %w", err)
	}
	logger.InfoContext(ctx, "Catalog loaded", slog.String("source", catalogSource()))
	return repos, nil
}

func catalogSource() string {
	if catalogFile == "" {
		return "built-in"
	}
	return catalogFile
}
