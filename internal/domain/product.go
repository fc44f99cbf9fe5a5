package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrInvalidProductName     = errors.New("product name is required")
	ErrInvalidProductPrice    = errors.New("product price must not be negative")
	ErrInvalidProductDiscount = errors.New("product discount must be between 0 and 100")
)

const (
	DefaultProductIcon  = "fas fa-box"
	DefaultCategoryIcon = "fas fa-medkit"
)

// Category groups products on the storefront
type Category struct {
	Slug        string
	Name        string
	Description string
	Icon        string
	Order       int
	Active      bool
}

// Product represents the product entity
type Product struct {
	ID                 string
	Slug               string
	Name               string
	Brand              string
	CategorySlug       string
	Description        string
	Features           []string
	Price              float64
	DiscountPercentage int
	Stock              int
	Icon               string
	Featured           bool
	Active             bool
	Views              int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewProduct creates a new active product with validation
func NewProduct(name, description string, price float64) (*Product, error) {
	now := time.Now()
	product := &Product{
		ID:          uuid.New().String(),
		Slug:        Slugify(name),
		Name:        name,
		Description: description,
		Price:       price,
		Icon:        DefaultProductIcon,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProductName
	}
	if p.Price < 0 {
		return ErrInvalidProductPrice
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		return ErrInvalidProductDiscount
	}
	return nil
}

// FinalPrice is the price after the product discount is applied
func (p *Product) FinalPrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price - p.Price*float64(p.DiscountPercentage)/100
	}
	return p.Price
}

// CartIcon returns the icon shown for the product in the cart widget
func (p *Product) CartIcon() string {
	if p.Icon == "" {
		return DefaultProductIcon
	}
	return p.Icon
}

// Matches reports whether the lowercased search term occurs in the
// product name or description. An empty term matches everything.
func (p *Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// NormalizeSearchTerm trims and lowercases a user supplied search string.
func NormalizeSearchTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Slugify builds a URL slug from a name, keeping unicode letters so Arabic
// names produce readable slugs.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
