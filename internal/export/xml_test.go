package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/teamflow/finance-service/internal/models"
)

func TestWriteTrendXML(t *testing.T) {
	forecast := 1200.0
	analysis := models.TrendAnalysis{
		Points: []models.TrendPoint{
			{Period: "Jan 2025", Income: 1000, Expense: 400, Profit: 600},
			{Period: "Feb 2025", Income: 1100, Expense: 500, Profit: 600, IncomeGrowth: 10, IsAnomaly: true, AnomalyType: models.AnomalyIncome},
			{Period: "Mar 2025", IsForecast: true, ForecastedIncome: &forecast, ForecastedExpense: &forecast, ForecastedProfit: &forecast},
		},
		Summary: models.TrendSummary{AvgIncome: 1050, AvgExpense: 450, AvgProfit: 600, AnomalyCount: 1},
	}

	var buf bytes.Buffer
	if err := WriteTrendXML(&buf, analysis); err != nil {
		t.Fatalf("WriteTrendXML failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<FinancialReport>",
		"<AvgIncome>1050.00</AvgIncome>",
		"<AnomalyCount>1</AnomalyCount>",
		`<Period label="Jan 2025">`,
		`anomaly="income"`,
		`forecast="true"`,
		"<Income>1200.00</Income>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("XML output missing %q:\n%s", want, out)
		}
	}
}
