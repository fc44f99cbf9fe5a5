package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddSameItemIncrementsQuantity(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add("ECG Machine", 1500, "fas fa-heartbeat"))
	require.NoError(t, cart.Add("ECG Machine", 1500, "fas fa-heartbeat"))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.Count())
}

func TestCartAddDefaultsIcon(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add("Gloves", 50, ""))

	assert.Equal(t, DefaultProductIcon, cart.Items[0].Icon)
}

func TestCartAddRejectsInvalidItems(t *testing.T) {
	cart := NewCart()
	assert.ErrorIs(t, cart.Add("  ", 10, ""), ErrInvalidItem)
	assert.ErrorIs(t, cart.Add("Mask", -1, ""), ErrInvalidItem)
	assert.True(t, cart.IsEmpty())
}

func TestCartAddKeepsInsertionOrder(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add("B", 1, ""))
	require.NoError(t, cart.Add("A", 1, ""))
	require.NoError(t, cart.Add("B", 1, ""))

	assert.Equal(t, "B", cart.Items[0].Name)
	assert.Equal(t, "A", cart.Items[1].Name)
}

func TestCartUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		quantity  int
		wantFound bool
		wantItems int
		wantQty   int
	}{
		{name: "set quantity", target: "Mask", quantity: 5, wantFound: true, wantItems: 1, wantQty: 5},
		{name: "zero removes", target: "Mask", quantity: 0, wantFound: true, wantItems: 0},
		{name: "negative removes", target: "Mask", quantity: -3, wantFound: true, wantItems: 0},
		{name: "unknown is no-op", target: "Thermometer", quantity: 4, wantFound: false, wantItems: 1, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			require.NoError(t, cart.Add("Mask", 10, ""))

			found := cart.UpdateQuantity(tt.target, tt.quantity)

			assert.Equal(t, tt.wantFound, found)
			require.Len(t, cart.Items, tt.wantItems)
			if tt.wantItems > 0 {
				assert.Equal(t, tt.wantQty, cart.Items[0].Quantity)
			}
		})
	}
}

func TestCartRemovingLastUnitRemovesItem(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add("Mask", 10, ""))
	require.NoError(t, cart.Add("Gloves", 5, ""))

	item, ok := cart.Item("Mask")
	require.True(t, ok)
	cart.UpdateQuantity("Mask", item.Quantity-1)

	_, ok = cart.Item("Mask")
	assert.False(t, ok)
	assert.Len(t, cart.Items, 1)
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add("Mask", 10, ""))

	assert.False(t, cart.Remove("Gloves"))
	assert.True(t, cart.Remove("Mask"))
	assert.True(t, cart.IsEmpty())
}

func TestCartTotalIsSumOfSubtotals(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add("Mask", 10, ""))
	require.NoError(t, cart.Add("Gloves", 2.5, ""))
	cart.UpdateQuantity("Mask", 3)
	cart.UpdateQuantity("Gloves", 4)

	assert.InDelta(t, 40.0, cart.Total(), 1e-9)
	assert.Equal(t, 7, cart.Count())
}

func TestCartTotalStaysFiniteAtBounds(t *testing.T) {
	cart := NewCart()
	assert.ErrorIs(t, cart.Add("Huge", 1e308, ""), ErrInvalidItem)
	assert.ErrorIs(t, cart.Add("NaN", math.NaN(), ""), ErrInvalidItem)
	assert.ErrorIs(t, cart.Add("Inf", math.Inf(1), ""), ErrInvalidItem)
	assert.True(t, cart.IsEmpty())

	require.NoError(t, cart.Add("Scanner", MaxPrice, ""))
	require.NoError(t, cart.Add("Bed", MaxPrice, ""))
	assert.True(t, cart.UpdateQuantity("Scanner", math.MaxInt))
	assert.Equal(t, MaxQuantity, cart.Items[0].Quantity)
	assert.ErrorIs(t, cart.Add("Scanner", MaxPrice, ""), ErrQuantityLimit)
	assert.Equal(t, MaxQuantity, cart.Items[0].Quantity)

	total := cart.Total()
	assert.False(t, math.IsInf(total, 0))
	assert.InDelta(t, MaxPrice*(MaxQuantity+1), total, 1)
	assert.Equal(t, MaxQuantity+1, cart.Count())
}

func TestDecodeCartClampsPriceAndQuantity(t *testing.T) {
	cart, err := DecodeCart([]byte(`[
		{"name":"Huge","price":1e308,"quantity":1e308},
		{"name":"Huge","price":5,"quantity":9999},
		{"name":"Neg","price":-4,"quantity":-2}
	]`))
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	assert.Equal(t, MaxPrice, cart.Items[0].Price)
	assert.Equal(t, MaxQuantity, cart.Items[0].Quantity)
	assert.Equal(t, 0.0, cart.Items[1].Price)
	assert.Equal(t, 1, cart.Items[1].Quantity)
	assert.False(t, math.IsInf(cart.Total(), 0))
}

func TestDecodeCartMalformedYieldsEmpty(t *testing.T) {
	inputs := []string{
		`{not json`,
		`{"name":"Mask"}`,
		`"a string"`,
		`42`,
	}

	for _, in := range inputs {
		cart, err := DecodeCart([]byte(in))
		assert.Error(t, err, in)
		require.NotNil(t, cart, in)
		assert.True(t, cart.IsEmpty(), in)
	}
}

func TestDecodeCartEmptyInput(t *testing.T) {
	for _, in := range []string{"", "  ", "null"} {
		cart, err := DecodeCart([]byte(in))
		assert.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	}
}

func TestDecodeCartNormalizesEntries(t *testing.T) {
	raw := `[
		{"name":"Mask","price":"12","icon":"","quantity":0},
		{"name":"Gloves","price":"abc","quantity":2},
		{"name":"","price":5,"quantity":1},
		7,
		{"name":"Mask","price":12,"quantity":2}
	]`

	cart, err := DecodeCart([]byte(raw))
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	assert.Equal(t, CartItem{Name: "Mask", Price: 12, Icon: DefaultProductIcon, Quantity: 3}, cart.Items[0])
	assert.Equal(t, CartItem{Name: "Gloves", Price: 0, Icon: DefaultProductIcon, Quantity: 2}, cart.Items[1])
}

func TestCartEncodeRoundTrip(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add("Mask", 10, "fas fa-mask"))

	raw, err := cart.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Mask","price":10,"icon":"fas fa-mask","quantity":1}]`, string(raw))

	empty, err := (&Cart{}).Encode()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
