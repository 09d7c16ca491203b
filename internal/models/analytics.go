package models

// Anomaly type labels; when more than one metric flags the same period the
// first in income > expense > profit order wins.
const (
	AnomalyIncome  = "income"
	AnomalyExpense = "expense"
	AnomalyProfit  = "profit"
)

// TrendPoint is one row of the trend analysis output. A row carries either
// historical values or forecast values, never a meaningful mix: forecast
// rows have zeroed historical fields.
type TrendPoint struct {
	Period        string  `json:"period"`
	Income        float64 `json:"income"`
	Expense       float64 `json:"expense"`
	Profit        float64 `json:"profit"`
	IncomeGrowth  float64 `json:"income_growth"`
	ExpenseGrowth float64 `json:"expense_growth"`
	ProfitGrowth  float64 `json:"profit_growth"`
	IsAnomaly     bool    `json:"is_anomaly"`
	AnomalyType   string  `json:"anomaly_type,omitempty"`
	IsForecast    bool    `json:"is_forecast"`

	ForecastedIncome  *float64 `json:"forecasted_income,omitempty"`
	ForecastedExpense *float64 `json:"forecasted_expense,omitempty"`
	ForecastedProfit  *float64 `json:"forecasted_profit,omitempty"`
}

// TrendSummary aggregates the historical points of a trend analysis.
// Forecast rows never contribute to the averages.
type TrendSummary struct {
	AvgIncome    float64 `json:"avg_income"`
	AvgExpense   float64 `json:"avg_expense"`
	AvgProfit    float64 `json:"avg_profit"`
	AnomalyCount int     `json:"anomaly_count"`
}

// TrendAnalysis is the combined historical+forecast series with summary stats
type TrendAnalysis struct {
	Points  []TrendPoint `json:"points"`
	Summary TrendSummary `json:"summary"`
}

// ExpenseBreakdownRow is one line of the expense export: a category/costType
// aggregate with its share of total expenses.
type ExpenseBreakdownRow struct {
	Category          string  `json:"category"`
	CostType          string  `json:"cost_type"`
	Amount            float64 `json:"amount"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}
