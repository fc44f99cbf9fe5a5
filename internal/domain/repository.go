package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	IncrementViews(ctx context.Context, slug string) error
}

// CategoryRepository defines the contract for category storage
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
}

// OfferRepository defines the contract for offer storage
type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	FindByID(ctx context.Context, id string) (*Offer, error)
	FindAll(ctx context.Context) ([]*Offer, error)
}

// OrderRepository defines the contract for order storage
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindBySession(ctx context.Context, sessionID string) ([]*Order, error)
}

// ContactRepository stores contact messages and newsletter subscriptions
type ContactRepository interface {
	SaveMessage(ctx context.Context, msg *ContactMessage) error
	Subscribe(ctx context.Context, sub *Subscription) error
}

// SessionStorage is a per-session key-value store of JSON strings, the
// server-side counterpart of the browser's local storage.
type SessionStorage interface {
	GetItem(ctx context.Context, sessionID, key string) (string, bool, error)
	SetItem(ctx context.Context, sessionID, key, value string) error
	RemoveItem(ctx context.Context, sessionID, key string) error
}
