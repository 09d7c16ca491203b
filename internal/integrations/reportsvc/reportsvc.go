package reportsvc

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/teamflow/finance-service/internal/models"
)

// Source produces a trend report for a project. The remote report service
// and the local analytics engine both satisfy it.
type Source interface {
	TrendReport(projectID int64, granularity models.Granularity) (*models.TrendAnalysis, error)
}

// Client fetches pre-rendered trend reports from the central report service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a report service client
func NewClient(url string, log *logrus.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// TrendReport requests a report document from the remote service and parses it
func (c *Client) TrendReport(projectID int64, granularity models.Granularity) (*models.TrendAnalysis, error) {
	requestURL := fmt.Sprintf("%s/reports/trends?project=%d&granularity=%s", c.url, projectID, granularity)
	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("Report service XML response: %d bytes", len(body))

	return parseReport(body)
}

// parseReport decodes a FinancialReport XML document
func parseReport(rawBody []byte) (*models.TrendAnalysis, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := doc.FindElement("//FinancialReport")
	if root == nil {
		return nil, fmt.Errorf("no FinancialReport element in response")
	}

	analysis := &models.TrendAnalysis{Points: []models.TrendPoint{}}
	if summary := root.FindElement("./Summary"); summary != nil {
		analysis.Summary.AvgIncome = floatText(summary, "AvgIncome")
		analysis.Summary.AvgExpense = floatText(summary, "AvgExpense")
		analysis.Summary.AvgProfit = floatText(summary, "AvgProfit")
		analysis.Summary.AnomalyCount = int(floatText(summary, "AnomalyCount"))
	}

	for _, el := range root.FindElements("./Periods/Period") {
		point := models.TrendPoint{Period: el.SelectAttrValue("label", "")}
		if el.SelectAttrValue("forecast", "") == "true" {
			point.IsForecast = true
			income := floatText(el, "Income")
			expense := floatText(el, "Expense")
			profit := floatText(el, "Profit")
			point.ForecastedIncome = &income
			point.ForecastedExpense = &expense
			point.ForecastedProfit = &profit
		} else {
			point.Income = floatText(el, "Income")
			point.Expense = floatText(el, "Expense")
			point.Profit = floatText(el, "Profit")
			point.IncomeGrowth = floatText(el, "IncomeGrowth")
			point.ExpenseGrowth = floatText(el, "ExpenseGrowth")
			point.ProfitGrowth = floatText(el, "ProfitGrowth")
			if anomaly := el.SelectAttrValue("anomaly", ""); anomaly != "" {
				point.IsAnomaly = true
				point.AnomalyType = anomaly
			}
		}
		analysis.Points = append(analysis.Points, point)
	}
	return analysis, nil
}

func floatText(parent *etree.Element, tag string) float64 {
	el := parent.FindElement("./" + tag)
	if el == nil {
		return 0
	}
	v, err := strconv.ParseFloat(el.Text(), 64)
	if err != nil {
		return 0
	}
	return v
}

// TieredSource resolves reports remote-first with a local fallback. The
// precedence is explicit: the remote service is asked when configured, and
// any remote failure is logged before the local engine takes over.
type TieredSource struct {
	remote *Client
	local  Source
	log    *logrus.Logger
}

// NewTieredSource builds a tiered source; remote may be nil when no report
// service is configured.
func NewTieredSource(remote *Client, local Source, log *logrus.Logger) *TieredSource {
	return &TieredSource{remote: remote, local: local, log: log}
}

// TrendReport returns the remote report when available, the local one otherwise
func (t *TieredSource) TrendReport(projectID int64, granularity models.Granularity) (*models.TrendAnalysis, error) {
	if t.remote != nil {
		analysis, err := t.remote.TrendReport(projectID, granularity)
		if err == nil {
			return analysis, nil
		}
		t.log.Warnf("Remote report service failed for project %d, falling back to local engine: %v", projectID, err)
	}
	return t.local.TrendReport(projectID, granularity)
}
