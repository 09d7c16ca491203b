package analytics

import (
	"sort"
	"time"

	"github.com/teamflow/finance-service/internal/models"
)

// AggregateFilter narrows aggregation to a single year and, for quarterly
// granularity, a single quarter. Zero values mean no filtering.
type AggregateFilter struct {
	Year    int
	Quarter int
}

// AggregatePeriods groups financial records into period buckets and returns
// one FinancialPeriod per non-empty bucket, sorted ascending by start date.
// Soft-deleted records are excluded. An empty record list yields an empty
// sequence, not an error.
func AggregatePeriods(records []models.FinancialRecord, g models.Granularity, filter AggregateFilter) []models.FinancialPeriod {
	buckets := make(map[time.Time]*models.FinancialPeriod)

	for _, rec := range records {
		if rec.DeletedAt != nil {
			continue
		}
		if filter.Year != 0 && rec.Date.Year() != filter.Year {
			continue
		}
		if filter.Quarter != 0 && quarterOf(rec.Date) != filter.Quarter {
			continue
		}

		start := periodStart(rec.Date, g)
		period, ok := buckets[start]
		if !ok {
			period = &models.FinancialPeriod{
				StartDate: start,
				EndDate:   models.NextPeriodStart(start, g).AddDate(0, 0, -1),
			}
			buckets[start] = period
		}
		switch rec.Type {
		case models.RecordTypeIncome:
			period.Income += rec.Amount
		case models.RecordTypeExpense:
			period.Expense += rec.Amount
		}
	}

	periods := make([]models.FinancialPeriod, 0, len(buckets))
	for _, period := range buckets {
		period.Profit = period.Income - period.Expense
		periods = append(periods, *period)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
	return periods
}

// periodStart truncates a date to its bucket's start boundary.
func periodStart(date time.Time, g models.Granularity) time.Time {
	switch g {
	case models.GranularityQuarterly:
		month := time.Month((quarterOf(date)-1)*3 + 1)
		return time.Date(date.Year(), month, 1, 0, 0, 0, 0, time.UTC)
	case models.GranularityAnnual:
		return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

func quarterOf(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}
