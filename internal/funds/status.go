package funds

import "github.com/teamflow/finance-service/internal/models"

// LowThresholdPercent is the share of the total budget below which a funded
// category is flagged as underfunded.
const LowThresholdPercent = 10.0

// RemainingPercent returns the unspent share of a fund's balance, on a
// 0-100 scale. A zero balance reads as 0, never NaN.
func RemainingPercent(account models.FundAccount) float64 {
	if account.Balance == 0 {
		return 0
	}
	return (account.Balance - account.Allocated) / account.Balance * 100
}

// DepletionStatus derives the health of a fund account from how much of its
// balance remains uncommitted. Overspend (allocated > balance) is not
// rejected by the engine; it surfaces here as critical.
func DepletionStatus(account models.FundAccount) string {
	pct := RemainingPercent(account)
	switch {
	case pct <= 0:
		return models.FundStatusCritical
	case pct <= 20:
		return models.FundStatusWarning
	default:
		return models.FundStatusHealthy
	}
}

// ThresholdNotices inspects a finished allocation and flags categories that
// received less than LowThresholdPercent of the total budget (but more than
// nothing), plus categories that received nothing at all.
func ThresholdNotices(allocation *models.BudgetAllocation) []models.FundNotice {
	var notices []models.FundNotice
	for _, category := range models.FundCategories {
		var pct float64
		if allocation.TotalBudget > 0 {
			pct = allocation.Allocations[category] / allocation.TotalBudget * 100
		}
		switch {
		case pct == 0:
			notices = append(notices, models.FundNotice{Category: category, Kind: models.NoticeDepletion, Percentage: pct})
		case pct < LowThresholdPercent:
			notices = append(notices, models.FundNotice{Category: category, Kind: models.NoticeLowThreshold, Percentage: pct})
		}
	}
	return notices
}
