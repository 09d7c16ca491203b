package export

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/teamflow/finance-service/internal/models"
)

// WriteTrendXML serializes a trend analysis as an XML report document.
func WriteTrendXML(w io.Writer, analysis models.TrendAnalysis) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("FinancialReport")

	summary := root.CreateElement("Summary")
	summary.CreateElement("AvgIncome").SetText(fmt.Sprintf("%.2f", analysis.Summary.AvgIncome))
	summary.CreateElement("AvgExpense").SetText(fmt.Sprintf("%.2f", analysis.Summary.AvgExpense))
	summary.CreateElement("AvgProfit").SetText(fmt.Sprintf("%.2f", analysis.Summary.AvgProfit))
	summary.CreateElement("AnomalyCount").SetText(fmt.Sprintf("%d", analysis.Summary.AnomalyCount))

	periods := root.CreateElement("Periods")
	for _, point := range analysis.Points {
		el := periods.CreateElement("Period")
		el.CreateAttr("label", point.Period)
		if point.IsForecast {
			el.CreateAttr("forecast", "true")
			el.CreateElement("Income").SetText(fmt.Sprintf("%.2f", deref(point.ForecastedIncome)))
			el.CreateElement("Expense").SetText(fmt.Sprintf("%.2f", deref(point.ForecastedExpense)))
			el.CreateElement("Profit").SetText(fmt.Sprintf("%.2f", deref(point.ForecastedProfit)))
			continue
		}
		el.CreateElement("Income").SetText(fmt.Sprintf("%.2f", point.Income))
		el.CreateElement("Expense").SetText(fmt.Sprintf("%.2f", point.Expense))
		el.CreateElement("Profit").SetText(fmt.Sprintf("%.2f", point.Profit))
		el.CreateElement("IncomeGrowth").SetText(fmt.Sprintf("%.2f", point.IncomeGrowth))
		el.CreateElement("ExpenseGrowth").SetText(fmt.Sprintf("%.2f", point.ExpenseGrowth))
		el.CreateElement("ProfitGrowth").SetText(fmt.Sprintf("%.2f", point.ProfitGrowth))
		if point.IsAnomaly {
			el.CreateAttr("anomaly", point.AnomalyType)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XML report: %w", err)
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
