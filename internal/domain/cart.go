package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CartStorageKey is the session storage key holding the cart JSON array.
const CartStorageKey = "medicalCart"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidItem   = errors.New("cart item requires a name and a price between 0 and 1000000000")
	ErrQuantityLimit = errors.New("cart item quantity limit reached")
)

// CartItem is one line of the cart. Items are identified by name.
type CartItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Icon     string  `json:"icon"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price multiplied by quantity
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the ordered list of items a session intends to buy.
//
// Names are unique within a cart, every quantity is between 1 and
// MaxQuantity and every price between 0 and MaxPrice, so totals stay finite.
type Cart struct {
	Items []CartItem
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// Add puts one unit of the named item in the cart. An item already present
// has its quantity incremented instead of being duplicated.
func (c *Cart) Add(name string, price float64, icon string) error {
	name = strings.TrimSpace(name)
	if name == "" || !(price >= 0 && price <= MaxPrice) {
		return ErrInvalidItem
	}
	if item := c.find(name); item != nil {
		if item.Quantity >= MaxQuantity {
			return ErrQuantityLimit
		}
		item.Quantity++
		return nil
	}
	if icon == "" {
		icon = DefaultProductIcon
	}
	c.Items = append(c.Items, CartItem{Name: name, Price: price, Icon: icon, Quantity: 1})
	return nil
}

// Remove drops the named item. It reports whether anything was removed.
func (c *Cart) Remove(name string) bool {
	kept := c.Items[:0]
	removed := false
	for _, item := range c.Items {
		if item.Name == name {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}

// UpdateQuantity sets the quantity of the named item, capped at
// MaxQuantity. A quantity of zero or less removes the item. Unknown names
// are ignored and report false.
func (c *Cart) UpdateQuantity(name string, quantity int) bool {
	item := c.find(name)
	if item == nil {
		return false
	}
	if quantity <= 0 {
		c.Remove(name)
		return true
	}
	item.Quantity = min(quantity, MaxQuantity)
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Item returns a copy of the named item
func (c *Cart) Item(name string) (CartItem, bool) {
	if item := c.find(name); item != nil {
		return *item, true
	}
	return CartItem{}, false
}

// Count is the total number of units across all items
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Total is the sum of price times quantity across all items
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) find(name string) *CartItem {
	for i := range c.Items {
		if c.Items[i].Name == name {
			return &c.Items[i]
		}
	}
	return nil
}

// Encode serializes the cart as the JSON array kept in session storage
func (c *Cart) Encode() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(items)
}

// DecodeCart parses the stored cart JSON. It never returns a nil cart:
// content that is not a JSON array yields an empty cart together with the
// parse error so the caller can log it. Entries are normalized on the way
// in: prices are clamped to [0, MaxPrice], quantities to [1, MaxQuantity],
// nameless entries are dropped and repeated names are merged.
func DecodeCart(raw []byte) (*Cart, error) {
	cart := NewCart()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return cart, nil
	}

	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return cart, fmt.Errorf("decoding cart: %w", err)
	}

	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := fields["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		icon, _ := fields["icon"].(string)
		if icon == "" {
			icon = DefaultProductIcon
		}
		quantity := clampQuantity(toNumber(fields["quantity"]))
		price := clampPrice(toNumber(fields["price"]))

		if existing := cart.find(name); existing != nil {
			existing.Quantity = min(existing.Quantity+quantity, MaxQuantity)
			continue
		}
		cart.Items = append(cart.Items, CartItem{
			Name:     name,
			Price:    price,
			Icon:     icon,
			Quantity: quantity,
		})
	}

	return cart, nil
}
