package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an append-only cost entry booked against a Project.
type Expense struct {
	ExpenseID   string          `json:"expenseId"`
	TenantID    string          `json:"tenantId"`
	ProjectID   string          `json:"projectId"`
	Title       string          `json:"title"`
	Category    string          `json:"category"` // Material / Labour / Legal / Marketing etc.
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Remarks     string          `json:"remarks"`
	AuditFields
}
