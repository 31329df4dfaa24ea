package dto

import "github.com/shopspring/decimal"

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name       string `json:"name" binding:"required"`
	Location   string `json:"location" binding:"required"`
	TotalUnits int    `json:"totalUnits" binding:"gte=0"`
}

// CreateUnitRequest defines the data needed to add a unit to a project.
// Pointers distinguish omitted optional fields from zero values.
type CreateUnitRequest struct {
	ProjectID  string           `json:"projectId" binding:"required"`
	Tower      *string          `json:"tower"`
	Floor      *int             `json:"floor"`
	UnitNumber string           `json:"unitNumber" binding:"required"`
	Type       string           `json:"type"`
	Area       *decimal.Decimal `json:"area"`
	BasePrice  *decimal.Decimal `json:"basePrice"`
	Status     string           `json:"status" binding:"omitempty,unit_status"`
}

// UpdateUnitStatusRequest carries a manual Available/Hold change.
type UpdateUnitStatusRequest struct {
	Status string `json:"status" binding:"required,unit_status"`
}

// CreateExpenseRequest records a project expense.
type CreateExpenseRequest struct {
	ProjectID   string           `json:"projectId" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Category    string           `json:"category"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *Date            `json:"expenseDate"`
	Remarks     string           `json:"remarks"`
}
