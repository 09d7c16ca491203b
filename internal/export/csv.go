package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/teamflow/finance-service/internal/models"
)

// ExpenseBreakdown aggregates expense records by category and cost type and
// computes each aggregate's share of total expenses. Soft-deleted records
// are excluded. Rows come back largest first.
func ExpenseBreakdown(records []models.FinancialRecord) []models.ExpenseBreakdownRow {
	type key struct {
		category string
		costType string
	}
	sums := make(map[key]float64)
	var total float64

	for _, rec := range records {
		if rec.DeletedAt != nil || rec.Type != models.RecordTypeExpense {
			continue
		}
		sums[key{rec.Category, rec.CostType}] += rec.Amount
		total += rec.Amount
	}

	rows := make([]models.ExpenseBreakdownRow, 0, len(sums))
	for k, amount := range sums {
		row := models.ExpenseBreakdownRow{
			Category: k.category,
			CostType: k.costType,
			Amount:   amount,
		}
		if total > 0 {
			row.PercentageOfTotal = amount / total * 100
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// WriteExpenseCSV writes the expense breakdown in the consumer-facing CSV
// shape: a header, one row per category/costType aggregate, and a trailing
// "Total Expenses" row. The row layout is a published contract and must not
// change.
func WriteExpenseCSV(w io.Writer, rows []models.ExpenseBreakdownRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "costType", "amount", "percentageOfTotal"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	var total float64
	for _, row := range rows {
		total += row.Amount
		record := []string{
			row.Category,
			row.CostType,
			fmt.Sprintf("%.2f", row.Amount),
			fmt.Sprintf("%.1f%%", row.PercentageOfTotal),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	totalRow := []string{"Total Expenses", "", fmt.Sprintf("%.2f", total), "100%"}
	if err := cw.Write(totalRow); err != nil {
		return fmt.Errorf("failed to write CSV total row: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
