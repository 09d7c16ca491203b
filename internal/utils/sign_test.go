package utils

import (
	"testing"

	"github.com/google/uuid"

	"github.com/teamflow/finance-service/internal/models"
)

func sampleAllocation() *models.BudgetAllocation {
	return &models.BudgetAllocation{
		ID:          uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		TotalBudget: 100000,
		Allocations: map[models.FundCategory]float64{
			models.CategoryTechnology:  25000,
			models.CategoryGrowth:      20000,
			models.CategoryTeam:        30000,
			models.CategoryMarketing:   15000,
			models.CategoryEmergency:   5000,
			models.CategoryInvestments: 5000,
		},
	}
}

func TestSignAllocation(t *testing.T) {
	allocation := sampleAllocation()

	signature := SignAllocation(allocation, "secret")
	if signature == "" {
		t.Fatal("Signature should not be empty")
	}
	if signature != SignAllocation(allocation, "secret") {
		t.Error("Signature must be deterministic for identical input")
	}

	allocation.Signature = signature
	if !VerifyAllocation(allocation, "secret") {
		t.Error("Signature should verify with the signing secret")
	}
	if VerifyAllocation(allocation, "other-secret") {
		t.Error("Signature must not verify with a different secret")
	}
}

func TestVerifyAllocationDetectsTampering(t *testing.T) {
	allocation := sampleAllocation()
	allocation.Signature = SignAllocation(allocation, "secret")

	allocation.Allocations[models.CategoryTeam] = 99999
	if VerifyAllocation(allocation, "secret") {
		t.Error("Tampered allocation must fail verification")
	}
}
