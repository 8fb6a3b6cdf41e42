package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyProblem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"40", ""},
		{"12.5", ""},
		{"0.01", ""},
		{"120.000", ""},
		{"9999999999.99", ""},
		{"0.004", "must have at most 2 decimal places"},
		{"1.999", "must have at most 2 decimal places"},
		{"10000000000", "must not exceed 9999999999.99"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MoneyProblem(decimal.RequireFromString(tt.in)))
		})
	}
}
