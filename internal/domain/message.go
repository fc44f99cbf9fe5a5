package domain

import (
	"fmt"
	"strings"
)

// OrderMessage renders the order text sent to the store: one line per item
// with its line total, then the grand total.
func OrderMessage(storeName, currency string, order *Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "طلب جديد من موقع %s:\n", storeName)
	if order.Number != "" {
		fmt.Fprintf(&b, "رقم الطلب: %s\n", order.Number)
	}
	b.WriteString("\nالمنتجات:\n")
	for i, item := range order.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%dx) - %s %s", item.ProductName, item.Quantity, FormatMoney(item.Subtotal()), currency)
	}
	fmt.Fprintf(&b, "\n\nالمجموع الكلي: %s %s\n\n", FormatMoney(order.TotalAmount), currency)
	b.WriteString("يرجى التواصل معنا لإتمام الطلب.")
	return b.String()
}

// ContactText renders a contact form submission as chat text
func ContactText(msg *ContactMessage) string {
	return fmt.Sprintf("مرحباً، أريد التواصل معكم:\nالاسم: %s\nالبريد الإلكتروني: %s\nالهاتف: %s\nالموضوع: %s\nالرسالة: %s",
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message)
}
