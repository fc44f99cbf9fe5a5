// Package whatsapp builds wa.me chat links carrying prefilled messages.
package whatsapp

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// LinkBuilder creates chat links to a single store phone number
type LinkBuilder struct {
	Phone string
}

func NewLinkBuilder(phone string) *LinkBuilder {
	return &LinkBuilder{Phone: phone}
}

// Link returns https://wa.me/<phone>?text=<message> with the message
// percent-encoded the way browsers encode a URI component.
func (b *LinkBuilder) Link(message string) string {
	return baseURL + b.Phone + "?text=" + EncodeComponent(message)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s leaving only A-Z a-z 0-9 - _ . ! ~ * ' ( )
// unescaped.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
