package domain

import (
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrDuplicateOrderNumber = errors.New("order number already taken")
)

// OrderStatus tracks an order through fulfilment
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderNumberPrefix starts every order number
const OrderNumberPrefix = "EM"

// Customer holds the contact details attached to an order
type Customer struct {
	FullName string
	Phone    string
	Email    string
	Address  string
	Notes    string
}

// OrderItem is a snapshot of a cart line at checkout time
type OrderItem struct {
	ProductName string
	Quantity    int
	Price       float64
}

// Subtotal returns price multiplied by quantity
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is a checked-out cart
type Order struct {
	ID          string
	Number      string
	SessionID   string
	Customer    Customer
	Status      OrderStatus
	Items       []OrderItem
	TotalAmount float64
	ChatLink    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderFromCart snapshots the cart into a pending order
func NewOrderFromCart(sessionID string, cart *Cart, customer Customer, now time.Time) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, OrderItem{
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	order := &Order{
		ID:        uuid.New().String(),
		Number:    GenerateOrderNumber(),
		SessionID: sessionID,
		Customer:  customer,
		Status:    OrderPending,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.CalculateTotal()
	return order, nil
}

// CalculateTotal recomputes TotalAmount from the items
func (o *Order) CalculateTotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	o.TotalAmount = total
	return total
}

// Confirm moves the order to processing and records the chat link it was sent with.
func (o *Order) Confirm(chatLink string, now time.Time) {
	o.CalculateTotal()
	o.Status = OrderProcessing
	o.ChatLink = chatLink
	o.UpdatedAt = now
}

// GenerateOrderNumber returns "EM" followed by eight random digits
func GenerateOrderNumber() string {
	var b strings.Builder
	b.WriteString(OrderNumberPrefix)
	for range 8 {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
