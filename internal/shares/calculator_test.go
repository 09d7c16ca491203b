package shares

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/teamflow/finance-service/internal/models"
)

func TestCalculateFromAvailability(t *testing.T) {
	members := []models.TeamMember{
		{ID: 1, Name: "Alice", Availability: 50},
		{ID: 2, Name: "Bob", Availability: 50},
	}

	set, err := CalculateFromAvailability(100000, members)
	if err != nil {
		t.Fatalf("CalculateFromAvailability failed: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("Expected 2 shares, got %d", len(set))
	}
	for _, share := range set {
		if share.Percentage != 50 {
			t.Errorf("%s percentage should be 50, got %.2f", share.MemberName, share.Percentage)
		}
		if share.Amount != 50000 {
			t.Errorf("%s amount should be 50000, got %.2f", share.MemberName, share.Amount)
		}
	}
	if set[0].SetID != set[1].SetID {
		t.Error("All shares of one calculation should carry the same set ID")
	}
}

func TestCalculateFromAvailabilityWeighted(t *testing.T) {
	members := []models.TeamMember{
		{ID: 1, Name: "Alice", Availability: 30},
		{ID: 2, Name: "Bob", Availability: 10},
	}

	set, err := CalculateFromAvailability(40000, members)
	if err != nil {
		t.Fatalf("CalculateFromAvailability failed: %v", err)
	}
	if set[0].Percentage != 75 || set[0].Amount != 30000 {
		t.Errorf("Alice should get 75%% / 30000, got %.2f%% / %.2f", set[0].Percentage, set[0].Amount)
	}
	if set[1].Percentage != 25 || set[1].Amount != 10000 {
		t.Errorf("Bob should get 25%% / 10000, got %.2f%% / %.2f", set[1].Percentage, set[1].Amount)
	}
}

func TestCalculateFromAvailabilityDegenerate(t *testing.T) {
	set, err := CalculateFromAvailability(100000, nil)
	if err != nil {
		t.Fatalf("Empty roster should not fail: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("Empty roster should yield an empty share set, got %d", len(set))
	}

	members := []models.TeamMember{
		{ID: 1, Name: "Alice", Availability: 0},
		{ID: 2, Name: "Bob", Availability: 0},
	}
	set, err = CalculateFromAvailability(100000, members)
	if err != nil {
		t.Fatalf("Zero availability sum should not fail: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("Zero availability sum should yield an empty share set, got %d", len(set))
	}
}

func TestUpdateSharesRecomputesAmounts(t *testing.T) {
	existing := []models.ProfitShare{
		{MemberID: 1, MemberName: "Alice", Percentage: 60, Amount: 1},
		{MemberID: 2, MemberName: "Bob", Percentage: 40, Amount: 2},
	}

	revenue := 50000.0
	updated, err := UpdateShares(existing, &revenue)
	if err != nil {
		t.Fatalf("UpdateShares failed: %v", err)
	}
	if updated[0].Amount != 30000 {
		t.Errorf("Alice amount should be recomputed to 30000, got %.2f", updated[0].Amount)
	}
	if updated[1].Amount != 20000 {
		t.Errorf("Bob amount should be recomputed to 20000, got %.2f", updated[1].Amount)
	}
	if existing[0].Amount != 1 {
		t.Error("UpdateShares must not mutate its input")
	}
}

// TestUpdateSharesPreservesManualAmounts checks that without an explicit
// revenue the stored amounts survive verbatim, even when they diverge from
// the percentage formula.
func TestUpdateSharesPreservesManualAmounts(t *testing.T) {
	existing := []models.ProfitShare{
		{MemberID: 1, MemberName: "Alice", Percentage: 50, Amount: 12345},
		{MemberID: 2, MemberName: "Bob", Percentage: 50, Amount: 777},
	}

	updated, err := UpdateShares(existing, nil)
	if err != nil {
		t.Fatalf("UpdateShares failed: %v", err)
	}
	if updated[0].Amount != 12345 || updated[1].Amount != 777 {
		t.Errorf("Amounts must be preserved verbatim, got %.2f and %.2f", updated[0].Amount, updated[1].Amount)
	}
}

func TestUpdateSharesValidation(t *testing.T) {
	tests := []struct {
		name  string
		share models.ProfitShare
	}{
		{"percentage above 100", models.ProfitShare{MemberName: "Bob", Percentage: 150, Amount: 10}},
		{"negative percentage", models.ProfitShare{MemberName: "Bob", Percentage: -5, Amount: 10}},
		{"NaN percentage", models.ProfitShare{MemberName: "Bob", Percentage: math.NaN(), Amount: 10}},
		{"negative amount", models.ProfitShare{MemberName: "Bob", Percentage: 50, Amount: -10}},
		{"infinite amount", models.ProfitShare{MemberName: "Bob", Percentage: 50, Amount: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := []models.ProfitShare{
				{MemberName: "Alice", Percentage: 50, Amount: 10},
				tt.share,
			}
			updated, err := UpdateShares(set, nil)
			if err == nil {
				t.Fatal("UpdateShares should fail validation")
			}
			var validationErr *models.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T: %v", err, err)
			}
			if !strings.Contains(validationErr.Field, "Bob") {
				t.Errorf("Error should name the offending member, got %q", validationErr.Field)
			}
			if updated != nil {
				t.Error("Failed update must not apply partially")
			}
		})
	}
}

func TestValidateFinal(t *testing.T) {
	set := []models.ProfitShare{
		{MemberName: "Alice", Percentage: 60},
		{MemberName: "Bob", Percentage: 40},
	}
	if err := ValidateFinal(set); err != nil {
		t.Errorf("Percentages summing to 100 should finalize, got %v", err)
	}

	set[1].Percentage = 40.02
	err := ValidateFinal(set)
	if err == nil {
		t.Fatal("Percentages summing to 100.02 should not finalize")
	}
	var invariantErr *models.InvariantError
	if !errors.As(err, &invariantErr) {
		t.Fatalf("Expected InvariantError, got %T: %v", err, err)
	}
	if math.Abs(invariantErr.Actual-100.02) > 1e-9 {
		t.Errorf("Error should carry the actual sum 100.02, got %.4f", invariantErr.Actual)
	}
}
