package handler

import (
	"bytes"
	"html/template"

	"github.com/mrops-br/entity-storefront/internal/domain"
)

const cartWidgetTemplate = `<span class="cart-count">{{.Count}}</span>
<div id="cartItems">
{{- if not .Items}}
  <div class="empty-cart">
    <i class="fas fa-shopping-cart" aria-hidden="true"></i>
    <p>عربة المشتريات فارغة</p>
  </div>
{{- else}}{{range .Items}}
  <div class="cart-item">
    <div class="item-icon"><i class="{{.Icon}}" aria-hidden="true"></i></div>
    <div class="item-details">
      <h4>{{.Name}}</h4>
      <p class="item-price">{{money .Price}} {{$.Currency}}</p>
    </div>
    <div class="item-controls">
      <button type="button" onclick="updateQuantity({{.Name}}, {{add .Quantity -1}})" class="qty-btn" aria-label="تقليل">-</button>
      <span class="qty">{{.Quantity}}</span>
      <button type="button" onclick="updateQuantity({{.Name}}, {{add .Quantity 1}})" class="qty-btn" aria-label="زيادة">+</button>
      <button type="button" onclick="removeFromCart({{.Name}})" class="remove-btn" aria-label="حذف">
        <i class="fas fa-trash" aria-hidden="true"></i>
      </button>
    </div>
  </div>
{{- end}}{{end}}
</div>
<div id="cartTotal">{{money .Total}} {{.Currency}}</div>
`

// CartWidget renders the cart drawer: item rows with quantity controls,
// or the empty-cart notice, followed by the total.
type CartWidget struct {
	tmpl     *template.Template
	currency string
}

func NewCartWidget(currency string) *CartWidget {
	tmpl := template.Must(template.New("cart").Funcs(template.FuncMap{
		"money": domain.FormatMoney,
		"add":   func(a, b int) int { return a + b },
	}).Parse(cartWidgetTemplate))

	return &CartWidget{tmpl: tmpl, currency: currency}
}

type widgetData struct {
	Items    []domain.CartItem
	Count    int
	Total    float64
	Currency string
}

// Render returns the widget HTML for the cart
func (w *CartWidget) Render(cart *domain.Cart) ([]byte, error) {
	var buf bytes.Buffer
	err := w.tmpl.Execute(&buf, widgetData{
		Items:    cart.Items,
		Count:    cart.Count(),
		Total:    cart.Total(),
		Currency: w.currency,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
