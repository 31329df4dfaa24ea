package domain

import (
	"fmt"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/shopspring/decimal"
)

// UnitStatus is the availability state of an inventory unit.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "Available"
	UnitHold      UnitStatus = "Hold"
	UnitSold      UnitStatus = "Sold"
)

// ParseUnitStatus converts user input into a UnitStatus.
func ParseUnitStatus(s string) (UnitStatus, error) {
	switch UnitStatus(s) {
	case UnitAvailable, UnitHold, UnitSold:
		return UnitStatus(s), nil
	}
	return "", apperrors.NewValidationFailedError(fmt.Sprintf("invalid unit status %q", s))
}

// ValidateManualTransition checks a staff-initiated status change.
//
// Available and Hold can be swapped freely. Sold is only ever reached through a
// booking, and a Sold unit cannot be moved back by hand.
func (s UnitStatus) ValidateManualTransition(to UnitStatus) error {
	if to != UnitAvailable && to != UnitHold {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unit status can only be set to %s or %s manually", UnitAvailable, UnitHold))
	}
	if s == UnitSold {
		return apperrors.NewConflictError("unit is sold and its status cannot be changed")
	}
	return nil
}

// IsBookable reports whether a new booking may reference a unit in this state.
func (s UnitStatus) IsBookable() bool {
	return s == UnitAvailable || s == UnitHold
}

// Unit is a sellable inventory item (flat/apartment) inside a Project.
type Unit struct {
	UnitID     string              `json:"unitId"`
	TenantID   string              `json:"tenantId"`
	ProjectID  string              `json:"projectId"`
	Tower      *string             `json:"tower,omitempty"`
	Floor      *int                `json:"floor,omitempty"`
	UnitNumber string              `json:"unitNumber"` // unique within the project only
	Type       string              `json:"type"`       // 2BHK / 3BHK
	Area       decimal.NullDecimal `json:"area"`       // sqft
	BasePrice  decimal.NullDecimal `json:"basePrice"`
	Status     UnitStatus          `json:"status"`
	AuditFields
}
