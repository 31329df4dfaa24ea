package services

import (
	"testing"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequirePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   *decimal.Decimal
		wantErr bool
	}{
		{"missing", nil, true},
		{"zero", dec("0"), true},
		{"negative", dec("-10"), true},
		{"largest storable", dec("9999999999999.99"), false},
		{"rounds past the column", dec("9999999999999.995"), true},
		{"too large", dec("10000000000000"), true},
		{"ordinary", dec("100000.50"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := requirePositive("amount", tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRequireNonNegative_Bounds(t *testing.T) {
	_, err := requireNonNegative("sellingPrice", dec("0"))
	assert.NoError(t, err)

	_, err = requireNonNegative("sellingPrice", dec("1e20"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = optionalNonNegative("area", dec("12345678901234"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
