package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/teamflow/finance-service/internal/analytics"
	"github.com/teamflow/finance-service/internal/export"
	"github.com/teamflow/finance-service/internal/integrations/reportsvc"
	"github.com/teamflow/finance-service/internal/models"
	"github.com/teamflow/finance-service/internal/service"
)

type Handler struct {
	svc     *service.Service
	reports reportsvc.Source
}

func NewHandler(svc *service.Service, reports reportsvc.Source) *Handler {
	return &Handler{svc: svc, reports: reports}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the engine's error taxonomy onto HTTP statuses:
// validation failures are 400, invariant violations are 422, the rest 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var invariantErr *models.InvariantError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &invariantErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateRecord handles new ledger entries
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID   int64   `json:"project_id"`
		Date        string  `json:"date"`
		Type        string  `json:"type"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		CostType    string  `json:"cost_type"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "date must be formatted YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	record := &models.FinancialRecord{
		ProjectID:   req.ProjectID,
		Date:        date,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		CostType:    req.CostType,
		Description: req.Description,
	}
	created, err := h.svc.CreateRecord(r.Context(), record)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListRecords returns a project's live records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListRecords(r.Context(), queryInt(r, "project"))
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.FinancialRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// DeleteRecord soft-deletes a record
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteRecord(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func granularityFromQuery(r *http.Request) models.Granularity {
	switch models.Granularity(r.URL.Query().Get("granularity")) {
	case models.GranularityQuarterly:
		return models.GranularityQuarterly
	case models.GranularityAnnual:
		return models.GranularityAnnual
	default:
		return models.GranularityMonthly
	}
}

// Trends returns the combined historical+forecast series for a project
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	projectID := queryInt(r, "project")
	granularity := granularityFromQuery(r)

	filter := analytics.AggregateFilter{
		Year:    int(queryInt(r, "year")),
		Quarter: int(queryInt(r, "quarter")),
	}

	var analysis *models.TrendAnalysis
	var err error
	if filter.Year == 0 && filter.Quarter == 0 {
		// Unfiltered reports can come from the remote report service
		analysis, err = h.reports.TrendReport(projectID, granularity)
	} else {
		analysis, err = h.svc.AnalyzeTrends(projectID, granularity, filter)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// ExportCSV streams the expense breakdown in the published CSV shape
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ExpenseBreakdown(queryInt(r, "project"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := export.WriteExpenseCSV(w, rows); err != nil {
		writeError(w, err)
	}
}

// ExportXML streams the trend report as XML
func (h *Handler) ExportXML(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.reports.TrendReport(queryInt(r, "project"), granularityFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="report.xml"`)
	if err := export.WriteTrendXML(w, *analysis); err != nil {
		writeError(w, err)
	}
}

// DistributeBudget splits a budget across the six fund categories
func (h *Handler) DistributeBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TotalBudget float64                         `json:"total_budget"`
		Percentages map[models.FundCategory]float64 `json:"percentages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accounts, allocation, err := h.svc.DistributeBudget(r.Context(), req.TotalBudget, req.Percentages)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"allocation": allocation,
		"funds":      accounts,
	})
}

// ListFunds returns the caller's fund accounts with depletion statuses
func (h *Handler) ListFunds(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListFunds(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if views == nil {
		views = []service.FundView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// ReassignFundCategory moves a fund account to another category
func (h *Handler) ReassignFundCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid fund id", http.StatusBadRequest)
		return
	}

	var req struct {
		Category models.FundCategory `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.svc.ReassignFundCategory(r.Context(), id, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// CalculateShares distributes revenue across the roster by availability
func (h *Handler) CalculateShares(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID    int64   `json:"project_id"`
		TotalRevenue float64 `json:"total_revenue"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	set, err := h.svc.CalculateShares(r.Context(), req.ProjectID, req.TotalRevenue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// UpdateShares validates and commits an edited share set
func (h *Handler) UpdateShares(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID    int64                `json:"project_id"`
		TotalRevenue *float64             `json:"total_revenue,omitempty"`
		Shares       []models.ProfitShare `json:"shares"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	set, err := h.svc.UpdateShares(r.Context(), req.ProjectID, req.Shares, req.TotalRevenue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// ListShares returns the stored share set for a project
func (h *Handler) ListShares(w http.ResponseWriter, r *http.Request) {
	set, err := h.svc.ListShares(r.Context(), queryInt(r, "project"))
	if err != nil {
		writeError(w, err)
		return
	}
	if set == nil {
		set = []models.ProfitShare{}
	}
	writeJSON(w, http.StatusOK, set)
}
