package pdf

import (
	"strings"
	"testing"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kort", "Kort"},
		{"123456789012345678901234567890123456789012345", "123456789012345678901234567890123456789012345"},
		{"1234567890123456789012345678901234567890123456", "123456789012345678901234567890123456789012345..."},
		{"É" + strings.Repeat("é", 48), "É" + strings.Repeat("é", 44) + "..."},
		{strings.Repeat("ab ", 20), strings.TrimSpace(strings.Repeat("ab ", 15)) + "..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, descriptionBudget))
	}
}

func TestPaymentURL(t *testing.T) {
	assert.Equal(t, "https://factuurdesk.nl/betalen/inv_1", PaymentURL("https://factuurdesk.nl/", "inv_1"))
	assert.Equal(t, "https://x.nl/betalen/a%2Fb", PaymentURL("https://x.nl", "a/b"))
	assert.Empty(t, PaymentURL("", "inv_1"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "factuur-F-2025-001.pdf", FileName(&invoice.Invoice{InvoiceNumber: "F 2025/001"}))
	assert.Equal(t, "factuur-inv_1.pdf", FileName(&invoice.Invoice{ID: "inv_1"}))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1E3A8A")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 30, G: 58, B: 138}, c)

	c, err = ParseHexColor("fff")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 255, G: 255, B: 255}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#GGGGGG")
	assert.Error(t, err)

	assert.Equal(t, defaultBrand, DefaultTheme().WithBrand("nope").Brand)
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a · c", joinNonEmpty(" · ", "a", " ", "c"))
	assert.Equal(t, "", joinNonEmpty(" · "))
}
