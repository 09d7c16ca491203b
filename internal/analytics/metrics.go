package analytics

import "math"

// CustomerAcquisitionCost returns marketing spend per acquired customer.
// With zero customers the cost is unbounded and reads as +Inf; the sentinel
// is part of the contract, not an error.
func CustomerAcquisitionCost(marketingSpend, customers float64) float64 {
	if customers == 0 {
		return math.Inf(1)
	}
	return marketingSpend / customers
}

// LifetimeValue estimates customer lifetime value from revenue and a
// retention rate in (0,1). Rates at or below 0 or above 1 yield 0; a perfect
// retention rate of 1 yields +Inf.
func LifetimeValue(revenue, retentionRate float64) float64 {
	if retentionRate <= 0 || retentionRate > 1 {
		return 0
	}
	if retentionRate == 1 {
		return math.Inf(1)
	}
	return revenue / (1 - retentionRate)
}
