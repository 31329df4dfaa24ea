package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/shopspring/decimal"
)

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("%s is required", field))
	}
	return value, nil
}

// maxAmount is the exclusive upper bound of a NUMERIC(15,2) money column.
var maxAmount = decimal.New(1, 13)

func requireInRange(field string, value decimal.Decimal) error {
	if value.Round(2).GreaterThanOrEqual(maxAmount) {
		return apperrors.NewValidationFailedError(fmt.Sprintf("%s must be less than %s", field, maxAmount.String()))
	}
	return nil
}

func requirePositive(field string, value *decimal.Decimal) (decimal.Decimal, error) {
	if value == nil {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("%s is required", field))
	}
	if !value.IsPositive() {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("%s must be greater than zero", field))
	}
	if err := requireInRange(field, *value); err != nil {
		return decimal.Zero, err
	}
	return *value, nil
}

func requireNonNegative(field string, value *decimal.Decimal) (decimal.Decimal, error) {
	if value == nil {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("%s is required", field))
	}
	if value.IsNegative() {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("%s must not be negative", field))
	}
	if err := requireInRange(field, *value); err != nil {
		return decimal.Zero, err
	}
	return *value, nil
}

func optionalNonNegative(field string, value *decimal.Decimal) (decimal.NullDecimal, error) {
	if value == nil {
		return decimal.NullDecimal{}, nil
	}
	v, err := requireNonNegative(field, value)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(v), nil
}
