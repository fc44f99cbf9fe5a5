package dto

import (
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
)

// CategoryResponse represents a catalog category
type CategoryResponse struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID                 string    `json:"id"`
	Slug               string    `json:"slug"`
	Name               string    `json:"name"`
	Brand              string    `json:"brand,omitempty"`
	Category           string    `json:"category,omitempty"`
	Description        string    `json:"description"`
	Features           []string  `json:"features"`
	Price              float64   `json:"price"`
	DiscountPercentage int       `json:"discount_percentage"`
	FinalPrice         float64   `json:"final_price"`
	Stock              int       `json:"stock"`
	Icon               string    `json:"icon"`
	Featured           bool      `json:"featured"`
	Views              int       `json:"views"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProductDetailResponse is a product together with related products
type ProductDetailResponse struct {
	Product *ProductResponse   `json:"product"`
	Related []*ProductResponse `json:"related"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return &ProductResponse{
		ID:                 p.ID,
		Slug:               p.Slug,
		Name:               p.Name,
		Brand:              p.Brand,
		Category:           p.CategorySlug,
		Description:        p.Description,
		Features:           features,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		FinalPrice:         p.FinalPrice(),
		Stock:              p.Stock,
		Icon:               p.CartIcon(),
		Featured:           p.Featured,
		Views:              p.Views,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

func ToCategoryResponseList(categories []*domain.Category) []*CategoryResponse {
	responses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = &CategoryResponse{
			Slug:        c.Slug,
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
		}
	}
	return responses
}
