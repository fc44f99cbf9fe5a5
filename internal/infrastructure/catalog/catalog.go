// Package catalog seeds the storefront's categories, products and offers
// from an embedded YAML document.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type categoryEntry struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Order       int    `yaml:"order"`
}

type productEntry struct {
	Slug        string   `yaml:"slug"`
	Name        string   `yaml:"name"`
	Brand       string   `yaml:"brand"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Price       float64  `yaml:"price"`
	Discount    int      `yaml:"discount"`
	Stock       int      `yaml:"stock"`
	Icon        string   `yaml:"icon"`
	Featured    bool     `yaml:"featured"`
}

type offerEntry struct {
	ID            string    `yaml:"id"`
	Title         string    `yaml:"title"`
	Description   string    `yaml:"description"`
	Type          string    `yaml:"type"`
	DiscountValue float64   `yaml:"discount_value"`
	StartsAt      time.Time `yaml:"starts_at"`
	EndsAt        time.Time `yaml:"ends_at"`
	Featured      bool      `yaml:"featured"`
	BadgeText     string    `yaml:"badge_text"`
	BadgeColor    string    `yaml:"badge_color"`
	Products      []string  `yaml:"products"`
}

// Catalog is the parsed seed document
type Catalog struct {
	Categories []categoryEntry `yaml:"categories"`
	Products   []productEntry  `yaml:"products"`
	Offers     []offerEntry    `yaml:"offers"`
}

// Default parses the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a catalog document and checks that products and offers
// only reference known categories and products.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	categories := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat.Slug] = true
	}
	products := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.Category != "" && !categories[p.Category] {
			return nil, fmt.Errorf("product %s: %w: %s", p.Slug, domain.ErrCategoryNotFound, p.Category)
		}
		products[p.Slug] = true
	}
	for _, o := range c.Offers {
		for _, slug := range o.Products {
			if !products[slug] {
				return nil, fmt.Errorf("offer %s: %w: %s", o.ID, domain.ErrProductNotFound, slug)
			}
		}
	}

	return &c, nil
}

// Repositories receives the seeded catalog
type Repositories struct {
	Products   domain.ProductRepository
	Categories domain.CategoryRepository
	Offers     domain.OfferRepository
}

// Seed writes every entry of the catalog into the repositories. Products
// get descending creation times so the first entry lists as the newest.
func (c *Catalog) Seed(ctx context.Context, repos Repositories, now time.Time) error {
	for _, entry := range c.Categories {
		category := &domain.Category{
			Slug:        entry.Slug,
			Name:        entry.Name,
			Description: entry.Description,
			Icon:        entry.Icon,
			Order:       entry.Order,
			Active:      true,
		}
		if err := repos.Categories.Create(ctx, category); err != nil {
			return fmt.Errorf("seeding category %s: %w", entry.Slug, err)
		}
	}

	for i, entry := range c.Products {
		product, err := domain.NewProduct(entry.Name, entry.Description, entry.Price)
		if err != nil {
			return fmt.Errorf("seeding product %s: %w", entry.Slug, err)
		}
		if entry.Slug != "" {
			product.Slug = entry.Slug
		}
		product.Brand = entry.Brand
		product.CategorySlug = entry.Category
		product.Features = entry.Features
		product.DiscountPercentage = entry.Discount
		product.Stock = entry.Stock
		product.Featured = entry.Featured
		if entry.Icon != "" {
			product.Icon = entry.Icon
		}
		product.CreatedAt = now.Add(-time.Duration(i) * time.Second)
		product.UpdatedAt = product.CreatedAt

		if err := repos.Products.Create(ctx, product); err != nil {
			return fmt.Errorf("seeding product %s: %w", entry.Slug, err)
		}
	}

	for i, entry := range c.Offers {
		offer := &domain.Offer{
			ID:            entry.ID,
			Title:         entry.Title,
			Description:   entry.Description,
			Type:          domain.OfferType(entry.Type),
			DiscountValue: entry.DiscountValue,
			StartsAt:      entry.StartsAt,
			EndsAt:        entry.EndsAt,
			Active:        true,
			Featured:      entry.Featured,
			BadgeText:     entry.BadgeText,
			BadgeColor:    entry.BadgeColor,
			ProductSlugs:  entry.Products,
			CreatedAt:     now.Add(-time.Duration(i) * time.Second),
		}
		if err := repos.Offers.Create(ctx, offer); err != nil {
			return fmt.Errorf("seeding offer %s: %w", entry.ID, err)
		}
	}

	return nil
}
