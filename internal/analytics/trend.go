package analytics

import (
	"github.com/sirupsen/logrus"

	"github.com/teamflow/finance-service/internal/models"
)

// ForecastHorizon is how many synthetic periods the trend analysis appends
// past the last historical period.
const ForecastHorizon = 3

// TrendService combines aggregation, growth, anomaly detection and linear
// forecasting into one historical+forecast series.
type TrendService struct {
	threshold float64
	log       *logrus.Logger
}

// NewTrendService initializes a trend service with the default z-score threshold
func NewTrendService(log *logrus.Logger) *TrendService {
	return &TrendService{threshold: DefaultZScoreThreshold, log: log}
}

// Analyze produces one TrendPoint per historical period, annotated with
// growth and anomaly data, followed by exactly ForecastHorizon forecast-only
// points whose labels advance one granularity unit at a time. Empty input
// yields an empty point set and zeroed summary, never an error.
func (s *TrendService) Analyze(periods []models.FinancialPeriod, g models.Granularity) models.TrendAnalysis {
	if len(periods) == 0 {
		return models.TrendAnalysis{Points: []models.TrendPoint{}}
	}

	incomes := make([]float64, len(periods))
	expenses := make([]float64, len(periods))
	profits := make([]float64, len(periods))
	for i, p := range periods {
		incomes[i] = p.Income
		expenses[i] = p.Expense
		profits[i] = p.Profit
	}

	incomeAnomalies := anomalyIndex(DetectAnomalies(incomes, s.threshold))
	expenseAnomalies := anomalyIndex(DetectAnomalies(expenses, s.threshold))
	profitAnomalies := anomalyIndex(DetectAnomalies(profits, s.threshold))

	points := make([]models.TrendPoint, 0, len(periods)+ForecastHorizon)
	summary := models.TrendSummary{}

	for i, p := range periods {
		point := models.TrendPoint{
			Period:  p.Label(g),
			Income:  p.Income,
			Expense: p.Expense,
			Profit:  p.Profit,
		}
		if i > 0 {
			prev := periods[i-1]
			point.IncomeGrowth = Growth(p.Income, prev.Income)
			point.ExpenseGrowth = Growth(p.Expense, prev.Expense)
			point.ProfitGrowth = Growth(p.Profit, prev.Profit)
		}

		// Priority order when several metrics flag the same period
		switch {
		case incomeAnomalies[i]:
			point.IsAnomaly = true
			point.AnomalyType = models.AnomalyIncome
		case expenseAnomalies[i]:
			point.IsAnomaly = true
			point.AnomalyType = models.AnomalyExpense
		case profitAnomalies[i]:
			point.IsAnomaly = true
			point.AnomalyType = models.AnomalyProfit
		}
		if point.IsAnomaly {
			summary.AnomalyCount++
		}

		summary.AvgIncome += p.Income
		summary.AvgExpense += p.Expense
		summary.AvgProfit += p.Profit
		points = append(points, point)
	}

	n := float64(len(periods))
	summary.AvgIncome /= n
	summary.AvgExpense /= n
	summary.AvgProfit /= n

	incomeForecast := ForecastLinear(incomes, ForecastHorizon)
	expenseForecast := ForecastLinear(expenses, ForecastHorizon)
	profitForecast := ForecastLinear(profits, ForecastHorizon)

	nextStart := models.NextPeriodStart(periods[len(periods)-1].StartDate, g)
	for i := 0; i < ForecastHorizon; i++ {
		fi, fe, fp := incomeForecast[i], expenseForecast[i], profitForecast[i]
		points = append(points, models.TrendPoint{
			Period:            models.PeriodLabel(nextStart, g),
			IsForecast:        true,
			ForecastedIncome:  &fi,
			ForecastedExpense: &fe,
			ForecastedProfit:  &fp,
		})
		nextStart = models.NextPeriodStart(nextStart, g)
	}

	s.log.Debugf("Trend analysis: %d historical periods, %d anomalies, %d forecast periods",
		len(periods), summary.AnomalyCount, ForecastHorizon)

	return models.TrendAnalysis{Points: points, Summary: summary}
}

func anomalyIndex(anomalies []Anomaly) map[int]bool {
	index := make(map[int]bool, len(anomalies))
	for _, a := range anomalies {
		index[a.Index] = true
	}
	return index
}
