package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello%20world"},
		{"a+b&c=d", "a%2Bb%26c%3Dd"},
		{"line1\nline2", "line1%0Aline2"},
		{"(2x) - it's *ok*!", "(2x)%20-%20it's%20*ok*!"},
		{"~_.-", "~_.-"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeComponent(tt.in))
		})
	}
}

func TestLinkRoundTrips(t *testing.T) {
	b := NewLinkBuilder("201013928114")
	msg := "طلب جديد\nجهاز (1x) - 1500 جنيه"

	link := b.Link(msg)
	require.True(t, strings.HasPrefix(link, "https://wa.me/201013928114?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, msg, u.Query().Get("text"))
}
