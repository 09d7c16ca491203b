package shares

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/teamflow/finance-service/internal/models"
)

// PercentSumTolerance is the floating tolerance on the finalization invariant
const PercentSumTolerance = 0.01

// CalculateFromAvailability distributes totalRevenue across members in
// proportion to their availability. An empty roster or an all-zero
// availability sum yields an empty share set rather than dividing by zero.
func CalculateFromAvailability(totalRevenue float64, members []models.TeamMember) ([]models.ProfitShare, error) {
	if math.IsNaN(totalRevenue) || math.IsInf(totalRevenue, 0) {
		return nil, &models.ValidationError{Entity: "shares", Field: "total_revenue", Reason: "must be finite"}
	}
	if totalRevenue < 0 {
		return nil, &models.ValidationError{Entity: "shares", Field: "total_revenue", Reason: "must not be negative"}
	}

	var totalAvailability float64
	for _, m := range members {
		if math.IsNaN(m.Availability) || math.IsInf(m.Availability, 0) || m.Availability < 0 {
			return nil, &models.ValidationError{
				Entity: "shares",
				Field:  fmt.Sprintf("availability of %s", m.Name),
				Reason: "must be finite and not negative",
			}
		}
		totalAvailability += m.Availability
	}
	if len(members) == 0 || totalAvailability == 0 {
		return []models.ProfitShare{}, nil
	}

	setID := uuid.New()
	result := make([]models.ProfitShare, 0, len(members))
	for _, m := range members {
		percentage := m.Availability / totalAvailability * 100
		result = append(result, models.ProfitShare{
			SetID:      setID,
			MemberID:   m.ID,
			MemberName: m.Name,
			Percentage: percentage,
			Amount:     totalRevenue * percentage / 100,
		})
	}
	return result, nil
}

// UpdateShares validates every share and returns a fresh set. When
// totalRevenue is supplied each amount is recomputed from its percentage;
// when it is nil existing amounts are preserved verbatim, which keeps manual
// amount overrides intact. A single invalid share fails the whole update
// naming the offending member and field; nothing is partially applied.
func UpdateShares(existing []models.ProfitShare, totalRevenue *float64) ([]models.ProfitShare, error) {
	for _, s := range existing {
		if math.IsNaN(s.Percentage) || math.IsInf(s.Percentage, 0) || s.Percentage < 0 || s.Percentage > 100 {
			return nil, &models.ValidationError{
				Entity: "shares",
				Field:  fmt.Sprintf("percentage of %s", s.MemberName),
				Reason: "must be between 0 and 100",
			}
		}
		if math.IsNaN(s.Amount) || math.IsInf(s.Amount, 0) || s.Amount < 0 {
			return nil, &models.ValidationError{
				Entity: "shares",
				Field:  fmt.Sprintf("amount of %s", s.MemberName),
				Reason: "must be finite and not negative",
			}
		}
	}
	if totalRevenue != nil {
		if math.IsNaN(*totalRevenue) || math.IsInf(*totalRevenue, 0) || *totalRevenue < 0 {
			return nil, &models.ValidationError{Entity: "shares", Field: "total_revenue", Reason: "must be finite and not negative"}
		}
	}

	updated := make([]models.ProfitShare, len(existing))
	copy(updated, existing)
	if totalRevenue != nil {
		for i := range updated {
			updated[i].Amount = *totalRevenue * updated[i].Percentage / 100
		}
	}
	return updated, nil
}

// ValidateFinal checks the finalization precondition: share percentages must
// sum to 100 within tolerance before a set is committed.
func ValidateFinal(set []models.ProfitShare) error {
	var sum float64
	for _, s := range set {
		sum += s.Percentage
	}
	if math.Abs(sum-100) > PercentSumTolerance {
		return &models.InvariantError{Invariant: "share percentages must sum to 100", Actual: sum}
	}
	return nil
}
