package funds

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/teamflow/finance-service/internal/models"
)

// PercentSumTolerance is the floating tolerance on the 100% sum invariant
const PercentSumTolerance = 0.01

// fundPurposes describes what each fixed category is for.
var fundPurposes = map[models.FundCategory]string{
	models.CategoryTechnology:  "Infrastructure, tooling and licenses",
	models.CategoryGrowth:      "Product development and expansion",
	models.CategoryTeam:        "Salaries, hiring and training",
	models.CategoryMarketing:   "Campaigns and customer acquisition",
	models.CategoryEmergency:   "Reserve for unplanned costs",
	models.CategoryInvestments: "Long-term investments",
}

// Distribute splits totalBudget across the six fixed fund categories
// according to percentages. Validation runs before any account is created,
// so a failed call produces no accounts and no allocation record: either all
// six FundAccounts and the BudgetAllocation come back, or none do.
//
// Percentages for categories absent from the map default to 0; unknown
// category keys are rejected.
func Distribute(totalBudget float64, percentages map[models.FundCategory]float64, userID int64) ([]models.FundAccount, *models.BudgetAllocation, error) {
	if math.IsNaN(totalBudget) || math.IsInf(totalBudget, 0) {
		return nil, nil, &models.ValidationError{Entity: "allocation", Field: "total_budget", Reason: "must be finite"}
	}
	if totalBudget < 0 {
		return nil, nil, &models.ValidationError{Entity: "allocation", Field: "total_budget", Reason: "must not be negative"}
	}

	for category, pct := range percentages {
		if !category.Valid() {
			return nil, nil, &models.ValidationError{Entity: "allocation", Field: string(category), Reason: "is not a known fund category"}
		}
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			return nil, nil, &models.ValidationError{Entity: "allocation", Field: string(category), Reason: "percentage must be finite"}
		}
		if pct < 0 || pct > 100 {
			return nil, nil, &models.ValidationError{Entity: "allocation", Field: string(category), Reason: "percentage must be between 0 and 100"}
		}
	}

	var sum float64
	for _, category := range models.FundCategories {
		sum += percentages[category]
	}
	if math.Abs(sum-100) > PercentSumTolerance {
		return nil, nil, &models.InvariantError{Invariant: "fund percentages must sum to 100", Actual: sum}
	}

	accounts := make([]models.FundAccount, 0, len(models.FundCategories))
	allocations := make(map[models.FundCategory]float64, len(models.FundCategories))
	for _, category := range models.FundCategories {
		pct := percentages[category]
		amount := pct * totalBudget / 100
		allocations[category] = amount
		accounts = append(accounts, models.FundAccount{
			Name:               string(category) + " Fund",
			Balance:            amount,
			Allocated:          0,
			Percentage:         pct,
			Purpose:            fundPurposes[category],
			AllocationCategory: category,
		})
	}

	allocation := &models.BudgetAllocation{
		ID:          uuid.New(),
		UserID:      userID,
		TotalBudget: totalBudget,
		Allocations: allocations,
		Status:      models.AllocationStatusDistributed,
		CreatedAt:   time.Now().UTC(),
	}
	return accounts, allocation, nil
}

// Reassign replaces a fund account's allocation category. This is a pure
// field replacement: balance and percentage stay untouched and the 100% sum
// invariant is enforced only at distribution time, not after the fact.
func Reassign(account models.FundAccount, category models.FundCategory) (models.FundAccount, error) {
	if !category.Valid() {
		return account, &models.ValidationError{Entity: "fund", Field: "allocation_category", Reason: "is not a known fund category"}
	}
	account.AllocationCategory = category
	return account, nil
}
