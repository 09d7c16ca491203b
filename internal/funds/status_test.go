package funds

import (
	"testing"

	"github.com/teamflow/finance-service/internal/models"
)

func TestDepletionStatus(t *testing.T) {
	tests := []struct {
		name      string
		balance   float64
		allocated float64
		want      string
	}{
		{"untouched fund", 10000, 0, models.FundStatusHealthy},
		{"warning at 15 percent remaining", 10000, 8500, models.FundStatusWarning},
		{"warning boundary at 20 percent", 10000, 8000, models.FundStatusWarning},
		{"critical when drained", 10000, 10000, models.FundStatusCritical},
		{"critical when overspent", 10000, 12000, models.FundStatusCritical},
		{"zero balance is critical", 0, 0, models.FundStatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := models.FundAccount{Balance: tt.balance, Allocated: tt.allocated}
			if got := DepletionStatus(account); got != tt.want {
				t.Errorf("DepletionStatus(balance=%.0f, allocated=%.0f) = %s, want %s",
					tt.balance, tt.allocated, got, tt.want)
			}
		})
	}
}

func TestRemainingPercent(t *testing.T) {
	account := models.FundAccount{Balance: 10000, Allocated: 8500}
	if pct := RemainingPercent(account); pct != 15 {
		t.Errorf("Remaining percent should be 15, got %.2f", pct)
	}
	if pct := RemainingPercent(models.FundAccount{}); pct != 0 {
		t.Errorf("Zero balance should read as 0 remaining, got %.2f", pct)
	}
}

func TestThresholdNotices(t *testing.T) {
	allocation := &models.BudgetAllocation{
		TotalBudget: 100000,
		Allocations: map[models.FundCategory]float64{
			models.CategoryTechnology:  40000,
			models.CategoryGrowth:      30000,
			models.CategoryTeam:        25000,
			models.CategoryMarketing:   5000, // 5%, below threshold
			models.CategoryEmergency:   0,    // depleted
			models.CategoryInvestments: 0,    // depleted
		},
	}

	notices := ThresholdNotices(allocation)
	if len(notices) != 3 {
		t.Fatalf("Expected 3 notices, got %d", len(notices))
	}

	kinds := make(map[models.FundCategory]string)
	for _, notice := range notices {
		kinds[notice.Category] = notice.Kind
	}
	if kinds[models.CategoryMarketing] != models.NoticeLowThreshold {
		t.Errorf("Marketing should get a low-threshold notice, got %s", kinds[models.CategoryMarketing])
	}
	if kinds[models.CategoryEmergency] != models.NoticeDepletion {
		t.Errorf("Emergency should get a depletion notice, got %s", kinds[models.CategoryEmergency])
	}
	if _, flagged := kinds[models.CategoryTechnology]; flagged {
		t.Error("Technology at 40 percent should not be flagged")
	}
}

func TestThresholdNoticesWellFunded(t *testing.T) {
	allocation := &models.BudgetAllocation{
		TotalBudget: 60000,
		Allocations: map[models.FundCategory]float64{
			models.CategoryTechnology:  10000,
			models.CategoryGrowth:      10000,
			models.CategoryTeam:        10000,
			models.CategoryMarketing:   10000,
			models.CategoryEmergency:   10000,
			models.CategoryInvestments: 10000,
		},
	}
	if notices := ThresholdNotices(allocation); len(notices) != 0 {
		t.Errorf("Evenly funded allocation should produce no notices, got %d", len(notices))
	}
}
