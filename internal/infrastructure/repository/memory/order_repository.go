package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrops-br/entity-storefront/internal/domain"
)

// OrderRepository is an in-memory implementation of domain.OrderRepository
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*domain.Order)}
}

// Create stores the order. A number already in use returns
// domain.ErrDuplicateOrderNumber and leaves the stored order untouched.
func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.Number]; exists {
		return domain.ErrDuplicateOrderNumber
	}
	r.orders[order.Number] = cloneOrder(order)
	return nil
}

func (r *OrderRepository) FindByNumber(_ context.Context, number string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[number]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// FindBySession returns the session's orders, newest first
func (r *OrderRepository) FindBySession(_ context.Context, sessionID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.SessionID == sessionID {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	c := *order
	c.Items = append([]domain.OrderItem(nil), order.Items...)
	return &c
}

// ContactRepository is an in-memory implementation of domain.ContactRepository
type ContactRepository struct {
	mu            sync.Mutex
	messages      []*domain.ContactMessage
	subscriptions map[string]*domain.Subscription
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{subscriptions: make(map[string]*domain.Subscription)}
}

func (r *ContactRepository) SaveMessage(_ context.Context, msg *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *msg
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *ContactRepository) Subscribe(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subscriptions[sub.Email]; exists {
		return domain.ErrAlreadySubscribed
	}
	stored := *sub
	r.subscriptions[sub.Email] = &stored
	return nil
}
