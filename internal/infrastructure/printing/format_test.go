package printing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatter_Money(t *testing.T) {
	f := newFormatter(language.English, "₹", nil)

	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"20", "₹20.00"},
		{"1234.5", "₹1,234.50"},
		{"1000000.126", "₹1,000,000.13"},
		{"-15.25", "-₹15.25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.money(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatter_Misc(t *testing.T) {
	f := newFormatter(language.English, "$", time.UTC)

	assert.Equal(t, "12,500", f.integer(12500))
	assert.Equal(t, "Preparing", f.title("preparing"))
	assert.Equal(t, "02 Jan 2006 15:04", f.clock(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)))
}
