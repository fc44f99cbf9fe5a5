package dto

import (
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
)

// OfferResponse is an offer with its resolved products
type OfferResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Type          string             `json:"type"`
	DiscountValue float64            `json:"discount_value"`
	StartsAt      time.Time          `json:"starts_at"`
	EndsAt        time.Time          `json:"ends_at"`
	Featured      bool               `json:"featured"`
	BadgeText     string             `json:"badge_text,omitempty"`
	BadgeColor    string             `json:"badge_color,omitempty"`
	Products      []*ProductResponse `json:"products"`
}

func ToOfferResponse(o *domain.Offer, products []*domain.Product) *OfferResponse {
	return &OfferResponse{
		ID:            o.ID,
		Title:         o.Title,
		Description:   o.Description,
		Type:          string(o.Type),
		DiscountValue: o.DiscountValue,
		StartsAt:      o.StartsAt,
		EndsAt:        o.EndsAt,
		Featured:      o.Featured,
		BadgeText:     o.BadgeText,
		BadgeColor:    o.BadgeColor,
		Products:      ToProductResponseList(products),
	}
}
