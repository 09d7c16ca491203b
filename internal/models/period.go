package models

import (
	"fmt"
	"time"
)

// Granularity selects the bucket size for period aggregation
type Granularity string

const (
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityAnnual    Granularity = "annual"
)

// FinancialPeriod is a derived aggregate over a contiguous date range.
// It is recomputed on demand from the live record set and never persisted
// as a source of truth.
type FinancialPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Income    float64   `json:"income"`
	Expense   float64   `json:"expense"`
	Profit    float64   `json:"profit"`
}

// Label renders the period start for display, e.g. "Jan 2025", "Q1 2025", "2025".
func (p FinancialPeriod) Label(g Granularity) string {
	return PeriodLabel(p.StartDate, g)
}

// PeriodLabel formats a period boundary according to granularity.
func PeriodLabel(start time.Time, g Granularity) string {
	switch g {
	case GranularityQuarterly:
		quarter := (int(start.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, start.Year())
	case GranularityAnnual:
		return fmt.Sprintf("%d", start.Year())
	default:
		return start.Format("Jan 2006")
	}
}

// NextPeriodStart advances a period boundary by one granularity unit.
func NextPeriodStart(start time.Time, g Granularity) time.Time {
	switch g {
	case GranularityQuarterly:
		return start.AddDate(0, 3, 0)
	case GranularityAnnual:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
