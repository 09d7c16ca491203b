package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/teamflow/finance-service/internal/models"
)

// SignAllocation generates an HMAC over the immutable fields of a budget
// allocation so a stored record can be checked for tampering. Categories are
// serialized in fixed display order to keep the signature deterministic.
func SignAllocation(allocation *models.BudgetAllocation, secret string) string {
	var builder strings.Builder
	builder.WriteString(allocation.ID.String())
	builder.WriteString(fmt.Sprintf("|%.2f", allocation.TotalBudget))
	for _, category := range models.FundCategories {
		builder.WriteString(fmt.Sprintf("|%s=%.2f", category, allocation.Allocations[category]))
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(builder.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyAllocation reports whether an allocation's stored signature matches
// its fields.
func VerifyAllocation(allocation *models.BudgetAllocation, secret string) bool {
	expected := SignAllocation(allocation, secret)
	return hmac.Equal([]byte(expected), []byte(allocation.Signature))
}
