package dto

import (
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
)

type OrderItemResponse struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type CustomerResponse struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// OrderResponse represents a recorded order
type OrderResponse struct {
	Number      string              `json:"number"`
	Status      string              `json:"status"`
	Customer    CustomerResponse    `json:"customer"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount float64             `json:"total_amount"`
	ChatLink    string              `json:"chat_link"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func ToOrderResponse(o *domain.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal(),
		}
	}
	return &OrderResponse{
		Number: o.Number,
		Status: string(o.Status),
		Customer: CustomerResponse{
			FullName: o.Customer.FullName,
			Phone:    o.Customer.Phone,
			Email:    o.Customer.Email,
			Address:  o.Customer.Address,
			Notes:    o.Customer.Notes,
		},
		Items:       items,
		TotalAmount: o.TotalAmount,
		ChatLink:    o.ChatLink,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func ToOrderResponseList(orders []*domain.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses
}
