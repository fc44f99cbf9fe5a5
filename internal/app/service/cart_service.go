package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// orderNumberAttempts bounds how many fresh numbers checkout tries when the
// generated one is already taken
const orderNumberAttempts = 5

// CartService handles the session cart use cases
type CartService struct {
	storage        domain.SessionStorage
	products       domain.ProductRepository
	orders         domain.OrderRepository
	links          ChatLinker
	store          StoreSettings
	locks          *sessionLocks
	now            func() time.Time
	orderNumber    func() string
	tracer         trace.Tracer
	logger         *slog.Logger
	cartOperations metric.Int64Counter
	ordersCreated  metric.Int64Counter
}

// NewCartService creates a new cart service
func NewCartService(
	storage domain.SessionStorage,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	links ChatLinker,
	store StoreSettings,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	cartOperations, _ := meter.Int64Counter(
		"storefront.cart.operations",
		metric.WithDescription("Total number of cart operations"),
	)

	ordersCreated, _ := meter.Int64Counter(
		"storefront.orders.created.total",
		metric.WithDescription("Total number of orders created at checkout"),
	)

	return &CartService{
		storage:        storage,
		products:       products,
		orders:         orders,
		links:          links,
		store:          store,
		locks:          newSessionLocks(),
		now:            systemNow,
		orderNumber:    domain.GenerateOrderNumber,
		tracer:         tracer,
		logger:         logger,
		cartOperations: cartOperations,
		ordersCreated:  ordersCreated,
	}
}

// Get returns the session cart with its count and total
func (s *CartService) Get(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return dto.ToCartResponse(cart, s.store.Currency), nil
}

// Cart loads the session cart. Missing or malformed content loads as empty.
func (s *CartService) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Cart")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	cart, err := s.load(ctx, sessionID)
	recordOutcome(ctx, span, s.logger, s.cartOperations, "load", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("cart.count", cart.Count()),
		attribute.Float64("cart.total", cart.Total()),
	)
	return cart, nil
}

// AddItem adds one unit of a catalog product (by slug) or of a free-form item
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	name, price, icon := req.Name, domain.PriceFromValue(req.Price), req.Icon
	if req.Slug != "" {
		span.SetAttributes(attribute.String("product.slug", req.Slug))
		product, err := s.products.FindBySlug(ctx, req.Slug)
		if err == nil && !product.Active {
			err = domain.ErrProductNotFound
		}
		if err != nil {
			recordOutcome(ctx, span, s.logger, s.cartOperations, "add", err)
			return nil, err
		}
		name, price, icon = product.Name, product.FinalPrice(), product.CartIcon()
	}

	span.SetAttributes(
		attribute.String("item.name", name),
		attribute.Float64("item.price", price),
	)

	cart, err := s.update(ctx, sessionID, func(c *domain.Cart) error {
		return c.Add(name, price, icon)
	})
	recordOutcome(ctx, span, s.logger, s.cartOperations, "add", err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Item added to cart",
		slog.String("item", name),
		slog.Int("cart_count", cart.Count()),
	)
	return dto.ToCartResponse(cart, s.store.Currency), nil
}

// AddProducts adds one unit of each product to the cart
func (s *CartService) AddProducts(ctx context.Context, sessionID string, products []*domain.Product) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddProducts")
	defer span.End()

	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int("product.count", len(products)),
	)

	cart, err := s.update(ctx, sessionID, func(c *domain.Cart) error {
		for _, p := range products {
			if err := c.Add(p.Name, p.FinalPrice(), p.CartIcon()); err != nil {
				return fmt.Errorf("adding %s: %w", p.Slug, err)
			}
		}
		return nil
	})
	recordOutcome(ctx, span, s.logger, s.cartOperations, "add_bundle", err)
	if err != nil {
		return nil, err
	}
	return dto.ToCartResponse(cart, s.store.Currency), nil
}

// UpdateQuantity sets an item's quantity; zero or less removes it and an
// unknown name leaves the cart untouched.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, name string, quantity int) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("item.name", name),
		attribute.Int("item.quantity", quantity),
	)

	cart, err := s.update(ctx, sessionID, func(c *domain.Cart) error {
		if !c.UpdateQuantity(name, quantity) {
			s.logger.DebugContext(ctx, "Quantity update for unknown item ignored",
				slog.String("item", name),
			)
		}
		return nil
	})
	recordOutcome(ctx, span, s.logger, s.cartOperations, "update", err)
	if err != nil {
		return nil, err
	}
	return dto.ToCartResponse(cart, s.store.Currency), nil
}

// RemoveItem drops the named item from the cart
func (s *CartService) RemoveItem(ctx context.Context, sessionID, name string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem")
	defer span.End()

	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("item.name", name),
	)

	cart, err := s.update(ctx, sessionID, func(c *domain.Cart) error {
		c.Remove(name)
		return nil
	})
	recordOutcome(ctx, span, s.logger, s.cartOperations, "remove", err)
	if err != nil {
		return nil, err
	}
	return dto.ToCartResponse(cart, s.store.Currency), nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	cart, err := s.update(ctx, sessionID, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
	recordOutcome(ctx, span, s.logger, s.cartOperations, "clear", err)
	if err != nil {
		return nil, err
	}
	return dto.ToCartResponse(cart, s.store.Currency), nil
}

// Checkout records the cart as an order, builds the chat link carrying the
// order message and empties the cart. The cart is left intact when the
// order cannot be stored.
func (s *CartService) Checkout(ctx context.Context, sessionID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Checkout")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	unlock := s.locks.lock(sessionID)
	defer unlock()

	resp, err := s.checkout(ctx, sessionID, req)
	recordOutcome(ctx, span, s.logger, s.cartOperations, "checkout", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.number", resp.OrderNumber),
		attribute.Float64("order.total", resp.Order.TotalAmount),
	)
	s.ordersCreated.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Order checked out",
		slog.String("order_number", resp.OrderNumber),
		slog.Float64("total", resp.Order.TotalAmount),
	)
	return resp, nil
}

func (s *CartService) checkout(ctx context.Context, sessionID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order, err := domain.NewOrderFromCart(sessionID, cart, req.Customer(), now)
	if err != nil {
		return nil, err
	}

	var message, link string
	for attempt := 1; ; attempt++ {
		order.Number = s.orderNumber()
		message = domain.OrderMessage(s.store.Name, s.store.Currency, order)
		link = s.links.Link(message)
		order.Confirm(link, now)

		err = s.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateOrderNumber) || attempt == orderNumberAttempts {
			return nil, fmt.Errorf("storing order %s: %w", order.Number, err)
		}
		s.logger.WarnContext(ctx, "Order number taken, regenerating",
			slog.String("order_number", order.Number),
			slog.Int("attempt", attempt),
		)
	}

	cart.Clear()
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		OrderNumber: order.Number,
		ChatURL:     link,
		Message:     message,
		Order:       dto.ToOrderResponse(order),
	}, nil
}

// update runs one read-modify-write cycle on the session cart
func (s *CartService) update(ctx context.Context, sessionID string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	raw, found, err := s.storage.GetItem(ctx, sessionID, domain.CartStorageKey)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if !found {
		return domain.NewCart(), nil
	}

	cart, err := domain.DecodeCart([]byte(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "Discarding malformed cart",
			slog.String("error", err.Error()),
		)
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := cart.Encode()
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.storage.SetItem(ctx, sessionID, domain.CartStorageKey, string(data)); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}
