package models

// Depletion statuses for a fund account
const (
	FundStatusHealthy  = "healthy"
	FundStatusWarning  = "warning"
	FundStatusCritical = "critical"
)

// Notice kinds emitted when an allocation leaves a category underfunded
const (
	NoticeLowThreshold = "low_threshold"
	NoticeDepletion    = "depletion"
)

// FundAccount is a named budget bucket for one fixed allocation category.
// Allocated tracks the amount already committed from the balance; the engine
// does not reject allocated > balance, depletion status surfaces it instead.
type FundAccount struct {
	ID                 int64        `json:"id"`
	UserID             int64        `json:"user_id"`
	Name               string       `json:"name"`
	Balance            float64      `json:"balance"`
	Allocated          float64      `json:"allocated"`
	Percentage         float64      `json:"percentage"`
	Purpose            string       `json:"purpose"`
	AllocationCategory FundCategory `json:"allocation_category"`
}

// FundNotice flags a category that received less than the low threshold
// (or nothing at all) in a finished allocation.
type FundNotice struct {
	Category   FundCategory `json:"category"`
	Kind       string       `json:"kind"`
	Percentage float64      `json:"percentage"`
}
