package models

import (
	"time"

	"github.com/google/uuid"
)

// FundCategory is one of the six fixed fund categories. The set is closed:
// the engine allocates to exactly these six, in this display order.
type FundCategory string

const (
	CategoryTechnology  FundCategory = "Technology"
	CategoryGrowth      FundCategory = "Growth"
	CategoryTeam        FundCategory = "Team"
	CategoryMarketing   FundCategory = "Marketing"
	CategoryEmergency   FundCategory = "Emergency"
	CategoryInvestments FundCategory = "Investments"
)

// FundCategories lists all categories in display order.
var FundCategories = [6]FundCategory{
	CategoryTechnology,
	CategoryGrowth,
	CategoryTeam,
	CategoryMarketing,
	CategoryEmergency,
	CategoryInvestments,
}

// Valid reports whether c is one of the six fixed categories.
func (c FundCategory) Valid() bool {
	for _, known := range FundCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Allocation statuses
const (
	AllocationStatusPending     = "pending"
	AllocationStatusApproved    = "approved"
	AllocationStatusDistributed = "distributed"
)

// BudgetAllocation is an immutable record of one distribution event. It is
// never mutated after creation, only superseded by a new allocation.
type BudgetAllocation struct {
	ID          uuid.UUID                `json:"id"`
	UserID      int64                    `json:"user_id"`
	TotalBudget float64                  `json:"total_budget"`
	Allocations map[FundCategory]float64 `json:"allocations"`
	Status      string                   `json:"status"`
	Signature   string                   `json:"signature,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}
