package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrOfferNotFound = errors.New("offer not found")

// OfferType describes how an offer discount is expressed
type OfferType string

const (
	OfferPercentage OfferType = "percentage"
	OfferFixed      OfferType = "fixed"
)

// Offer is a time-boxed promotion over a set of products
type Offer struct {
	ID            string
	Title         string
	Description   string
	Type          OfferType
	DiscountValue float64
	StartsAt      time.Time
	EndsAt        time.Time
	Active        bool
	Featured      bool
	BadgeText     string
	BadgeColor    string
	ProductSlugs  []string
	CreatedAt     time.Time
}

// IsValid reports whether the offer is active and now falls in its window
func (o *Offer) IsValid(now time.Time) bool {
	return o.Active && !now.Before(o.StartsAt) && !now.After(o.EndsAt)
}

// Matches reports whether the lowercased term occurs in the offer title,
// description or one of the given product names.
func (o *Offer) Matches(term string, productNames []string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(o.Title), term) ||
		strings.Contains(strings.ToLower(o.Description), term) {
		return true
	}
	for _, name := range productNames {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return false
}
