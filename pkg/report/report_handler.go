package report

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/techbudget/techbudget/internal/rest"
)

type Handler struct {
	service  Service
	renderer Renderer
}

func NewHandler(service Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// GetReport serves GET /api/report. The response is JSON by default and CSV
// when the caller sends Accept: text/csv.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := Filters{}
	if v := query.Get("budgetId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			rest.WriteError(w, rest.NewValidationError("budgetId must be a number"))
			return
		}
		filters.BudgetID = id
	}
	if v := query.Get("financialCompanyId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			rest.WriteError(w, rest.NewValidationError("financialCompanyId must be a number"))
			return
		}
		filters.FinancialCompanyID = &id
	}
	if v := query.Get("monthFrom"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			rest.WriteError(w, rest.NewValidationError("monthFrom must be a number"))
			return
		}
		filters.MonthFrom = m
	}
	if v := query.Get("monthTo"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			rest.WriteError(w, rest.NewValidationError("monthTo must be a number"))
			return
		}
		filters.MonthTo = m
	}

	result, err := h.service.GetReport(r.Context(), query.Get("type"), filters)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := h.renderer.RenderReport(result)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
