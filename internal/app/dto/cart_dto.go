package dto

import "github.com/mrops-br/entity-storefront/internal/domain"

// AddCartItemRequest adds one unit of an item. Either Slug names a catalog
// product, or Name/Price/Icon describe the item directly. Price may be a
// number or display text such as "1,500 جنيه".
type AddCartItemRequest struct {
	Slug  string `json:"slug,omitempty"`
	Name  string `json:"name,omitempty"`
	Price any    `json:"price,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// UpdateCartItemRequest sets the quantity of an item; zero or less removes it
type UpdateCartItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CheckoutRequest carries optional customer details for the order
type CheckoutRequest struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Customer converts the request to the order's customer details
func (r *CheckoutRequest) Customer() domain.Customer {
	if r == nil {
		return domain.Customer{}
	}
	return domain.Customer{
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
		Address:  r.Address,
		Notes:    r.Notes,
	}
}

type CartItemResponse struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Icon     string  `json:"icon"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartResponse is the cart with its derived count and total
type CartResponse struct {
	Items        []CartItemResponse `json:"items"`
	Count        int                `json:"count"`
	Total        float64            `json:"total"`
	FormattedSum string             `json:"formatted_total"`
}

// CheckoutResponse returns the chat link the order was sent with
type CheckoutResponse struct {
	OrderNumber string         `json:"order_number"`
	ChatURL     string         `json:"chat_url"`
	Message     string         `json:"message"`
	Order       *OrderResponse `json:"order"`
}

// ToCartResponse converts a domain Cart, formatting the total with the currency
func ToCartResponse(c *domain.Cart, currency string) *CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			Name:     item.Name,
			Price:    item.Price,
			Icon:     item.Icon,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		}
	}
	return &CartResponse{
		Items:        items,
		Count:        c.Count(),
		Total:        c.Total(),
		FormattedSum: domain.FormatMoney(c.Total()) + " " + currency,
	}
}
