package models

import (
	"math"
	"time"
)

// Record types
const (
	RecordTypeIncome  = "income"
	RecordTypeExpense = "expense"
)

// Cost types for expense records
const (
	CostTypeFixed    = "fixed"
	CostTypeVariable = "variable"
)

// FinancialRecord represents a single ledger entry
type FinancialRecord struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	UserID      int64      `json:"user_id"`
	Date        time.Time  `json:"date"`
	Type        string     `json:"type"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	CostType    string     `json:"cost_type,omitempty"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Validate checks the record fields before it is accepted into the ledger.
// Records are immutable once validated; the only later mutation is soft delete.
func (r *FinancialRecord) Validate() error {
	if r.Type != RecordTypeIncome && r.Type != RecordTypeExpense {
		return &ValidationError{Entity: "record", Field: "type", Reason: "must be income or expense"}
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return &ValidationError{Entity: "record", Field: "amount", Reason: "must be finite"}
	}
	if r.Amount < 0 {
		return &ValidationError{Entity: "record", Field: "amount", Reason: "must not be negative"}
	}
	if r.Category == "" {
		return &ValidationError{Entity: "record", Field: "category", Reason: "must not be empty"}
	}
	if r.CostType != "" && r.CostType != CostTypeFixed && r.CostType != CostTypeVariable {
		return &ValidationError{Entity: "record", Field: "cost_type", Reason: "must be fixed or variable"}
	}
	if r.Date.IsZero() {
		return &ValidationError{Entity: "record", Field: "date", Reason: "is required"}
	}
	return nil
}
