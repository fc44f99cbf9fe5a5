package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1500", FormatMoney(1500))
	assert.Equal(t, "12.5", FormatMoney(12.5))
	assert.Equal(t, "0", FormatMoney(0))
	assert.Equal(t, "0", FormatMoney(math.NaN()))
	assert.Equal(t, "0", FormatMoney(math.Inf(1)))
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 1500.0, ParsePrice("1,500 جنيه"))
	assert.Equal(t, 250.0, ParsePrice("EGP 250"))
	assert.Equal(t, 0.0, ParsePrice("call us"))
	assert.Equal(t, 0.0, ParsePrice(""))
}

func TestPriceFromValue(t *testing.T) {
	assert.Equal(t, 12.5, PriceFromValue(12.5))
	assert.Equal(t, 12.5, PriceFromValue(" 12.5 "))
	assert.Equal(t, 1500.0, PriceFromValue("1,500 جنيه"))
	assert.Equal(t, 0.0, PriceFromValue(-3.0))
	assert.Equal(t, 0.0, PriceFromValue(nil))
	assert.Equal(t, 0.0, PriceFromValue(map[string]any{}))
	assert.Equal(t, MaxPrice, PriceFromValue(1e308))
	assert.Equal(t, MaxPrice, PriceFromValue("1e308"))
	assert.Equal(t, MaxPrice, PriceFromValue("99999999999999"))
}

func TestProductFinalPrice(t *testing.T) {
	p, err := NewProduct("Stethoscope", "Dual head", 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, p.FinalPrice())

	p.DiscountPercentage = 25
	assert.Equal(t, 150.0, p.FinalPrice())
}

func TestProductValidate(t *testing.T) {
	_, err := NewProduct("", "desc", 10)
	assert.ErrorIs(t, err, ErrInvalidProductName)

	_, err = NewProduct("Mask", "desc", -1)
	assert.ErrorIs(t, err, ErrInvalidProductPrice)

	p, err := NewProduct("Mask", "desc", 1)
	require.NoError(t, err)
	p.DiscountPercentage = 101
	assert.ErrorIs(t, p.Validate(), ErrInvalidProductDiscount)
}

func TestProductMatches(t *testing.T) {
	p := &Product{Name: "ECG Machine", Description: "Twelve channel recorder"}

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches(NormalizeSearchTerm("  ecg ")))
	assert.True(t, p.Matches("channel"))
	assert.False(t, p.Matches("ultrasound"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ecg-machine-12", Slugify("  ECG Machine (12) "))
	assert.Equal(t, "جهاز-قياس", Slugify("جهاز قياس"))
	assert.Equal(t, "a-b", Slugify("a -- b"))
}

func TestFavoritesToggle(t *testing.T) {
	favs := &Favorites{}

	assert.True(t, favs.Toggle("Mask"))
	assert.True(t, favs.Contains("Mask"))
	assert.True(t, favs.Toggle("Gloves"))
	assert.False(t, favs.Toggle("Mask"))
	assert.Equal(t, []string{"Gloves"}, favs.Names)
}

func TestDecodeFavorites(t *testing.T) {
	favs, err := DecodeFavorites([]byte(`["Mask", 3, "Mask", "Gloves"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mask", "Gloves"}, favs.Names)

	favs, err = DecodeFavorites([]byte(`{oops`))
	assert.Error(t, err)
	assert.Empty(t, favs.Names)
}

func TestDecodeUser(t *testing.T) {
	u, err := DecodeUser([]byte(`{"name":"Omar","role":"admin"}`))
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)

	u, err = DecodeUser([]byte(`{"name":"Sara"}`))
	require.NoError(t, err)
	assert.Equal(t, RoleMember, u.Role)

	for _, in := range []string{"", "null", `{"role":"admin"}`, `[broken`} {
		_, err := DecodeUser([]byte(in))
		assert.True(t, errors.Is(err, ErrNotLoggedIn), in)
	}
}

func TestNewOrderFromCart(t *testing.T) {
	_, err := NewOrderFromCart("s1", NewCart(), Customer{}, time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)

	cart := NewCart()
	require.NoError(t, cart.Add("Mask", 10, ""))
	require.NoError(t, cart.Add("Gloves", 4, ""))
	cart.UpdateQuantity("Mask", 2)

	order, err := NewOrderFromCart("s1", cart, Customer{FullName: "Omar"}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, OrderPending, order.Status)
	assert.Equal(t, 24.0, order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.True(t, strings.HasPrefix(order.Number, OrderNumberPrefix))
	assert.Len(t, order.Number, 10)

	order.Confirm("https://wa.me/1", time.Now())
	assert.Equal(t, OrderProcessing, order.Status)
	assert.Equal(t, "https://wa.me/1", order.ChatLink)
}

func TestOfferIsValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	offer := &Offer{
		Active:   true,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	}

	assert.True(t, offer.IsValid(now))
	assert.True(t, offer.IsValid(offer.EndsAt))
	assert.False(t, offer.IsValid(now.Add(2*time.Hour)))

	offer.Active = false
	assert.False(t, offer.IsValid(now))
}

func TestOfferMatches(t *testing.T) {
	offer := &Offer{Title: "Summer Sale", Description: "Cardiology bundle"}

	assert.True(t, offer.Matches("summer", nil))
	assert.True(t, offer.Matches("cardio", nil))
	assert.True(t, offer.Matches("ecg", []string{"ECG Machine"}))
	assert.False(t, offer.Matches("dental", []string{"ECG Machine"}))
}

func TestNewContactMessage(t *testing.T) {
	_, err := NewContactMessage("Omar", "", "010", "Quote", "Hello")
	assert.ErrorIs(t, err, ErrInvalidContact)

	msg, err := NewContactMessage(" Omar ", "o@example.com", "010", "Quote", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Omar", msg.Name)
	assert.Equal(t, ContactNew, msg.Status)
}

func TestNewSubscription(t *testing.T) {
	sub, err := NewSubscription(" Omar@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "omar@example.com", sub.Email)

	named, err := NewSubscription("Omar <OMAR@example.com>")
	require.NoError(t, err)
	assert.Equal(t, sub.Email, named.Email)

	for _, bad := range []string{"not-an-email", "", "   "} {
		_, err = NewSubscription(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}
