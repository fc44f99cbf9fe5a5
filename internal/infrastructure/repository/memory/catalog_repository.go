package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrops-br/entity-storefront/internal/domain"
)

// CategoryRepository is an in-memory implementation of domain.CategoryRepository
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]*domain.Category)}
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *category
	if stored.Icon == "" {
		stored.Icon = domain.DefaultCategoryIcon
	}
	r.categories[stored.Slug] = &stored
	return nil
}

func (r *CategoryRepository) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[slug]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	found := *category
	return &found, nil
}

// FindAll returns categories ordered by their display order, then name
func (r *CategoryRepository) FindAll(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		category := *c
		categories = append(categories, &category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Order != categories[j].Order {
			return categories[i].Order < categories[j].Order
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// OfferRepository is an in-memory implementation of domain.OfferRepository
type OfferRepository struct {
	mu     sync.RWMutex
	offers map[string]*domain.Offer
}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{offers: make(map[string]*domain.Offer)}
}

func (r *OfferRepository) Create(_ context.Context, offer *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *offer
	stored.ProductSlugs = append([]string(nil), offer.ProductSlugs...)
	r.offers[stored.ID] = &stored
	return nil
}

func (r *OfferRepository) FindByID(_ context.Context, id string) (*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	found := *offer
	return &found, nil
}

// FindAll returns offers, newest first
func (r *OfferRepository) FindAll(_ context.Context) ([]*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offers := make([]*domain.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		offer := *o
		offers = append(offers, &offer)
	}
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].CreatedAt.After(offers[j].CreatedAt)
		}
		return offers[i].ID < offers[j].ID
	})
	return offers, nil
}
