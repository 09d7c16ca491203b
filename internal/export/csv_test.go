package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/teamflow/finance-service/internal/models"
)

func expense(category, costType string, amount float64) models.FinancialRecord {
	return models.FinancialRecord{
		Date:     time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		Type:     models.RecordTypeExpense,
		Amount:   amount,
		Category: category,
		CostType: costType,
	}
}

func TestExpenseBreakdown(t *testing.T) {
	now := time.Now()
	deleted := expense("Hosting", models.CostTypeFixed, 99999)
	deleted.DeletedAt = &now

	income := expense("Sales", "", 5000)
	income.Type = models.RecordTypeIncome

	records := []models.FinancialRecord{
		expense("Hosting", models.CostTypeFixed, 6000),
		expense("Hosting", models.CostTypeFixed, 2000),
		expense("Marketing", models.CostTypeVariable, 2000),
		deleted,
		income,
	}

	rows := ExpenseBreakdown(records)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 breakdown rows, got %d", len(rows))
	}
	if rows[0].Category != "Hosting" || rows[0].Amount != 8000 {
		t.Errorf("Largest aggregate should be Hosting/8000, got %s/%.2f", rows[0].Category, rows[0].Amount)
	}
	if rows[1].Category != "Marketing" || rows[1].Amount != 2000 {
		t.Errorf("Second aggregate should be Marketing/2000, got %s/%.2f", rows[1].Category, rows[1].Amount)
	}
}

// TestWriteExpenseCSV pins the consumer-facing CSV contract byte for byte.
func TestWriteExpenseCSV(t *testing.T) {
	rows := []models.ExpenseBreakdownRow{
		{Category: "Hosting", CostType: "fixed", Amount: 8000, PercentageOfTotal: 80},
		{Category: "Marketing", CostType: "variable", Amount: 2000, PercentageOfTotal: 20},
	}

	var buf bytes.Buffer
	if err := WriteExpenseCSV(&buf, rows); err != nil {
		t.Fatalf("WriteExpenseCSV failed: %v", err)
	}

	want := "category,costType,amount,percentageOfTotal\n" +
		"Hosting,fixed,8000.00,80.0%\n" +
		"Marketing,variable,2000.00,20.0%\n" +
		"Total Expenses,,10000.00,100%\n"
	if buf.String() != want {
		t.Errorf("CSV contract broken.\nGot:\n%s\nWant:\n%s", buf.String(), want)
	}
}

func TestWriteExpenseCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExpenseCSV(&buf, nil); err != nil {
		t.Fatalf("WriteExpenseCSV failed: %v", err)
	}

	want := "category,costType,amount,percentageOfTotal\n" +
		"Total Expenses,,0.00,100%\n"
	if buf.String() != want {
		t.Errorf("Empty CSV should still carry header and total row.\nGot:\n%s", buf.String())
	}
}
