package sheets

import (
	"encoding/json"
	"net/http"

	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/pkg/report"
)

type ExportRequestDTO struct {
	SpreadsheetID      string `json:"spreadsheetId"`
	Title              string `json:"title"`
	ReportType         string `json:"reportType"`
	BudgetID           int    `json:"budgetId"`
	FinancialCompanyID *int   `json:"financialCompanyId,omitempty"`
	MonthFrom          int    `json:"monthFrom,omitempty"`
	MonthTo            int    `json:"monthTo,omitempty"`
}

type Handler struct {
	reports  report.Service
	exporter Exporter
}

func NewHandler(reports report.Service, exporter Exporter) *Handler {
	return &Handler{reports: reports, exporter: exporter}
}

// Export serves POST /api/report/export: it computes the requested report and
// pushes it into the given spreadsheet.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var dto ExportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	if dto.SpreadsheetID == "" {
		rest.WriteError(w, rest.NewValidationError("spreadsheetId is required"))
		return
	}
	if dto.Title == "" {
		dto.Title = dto.ReportType
	}

	result, err := h.reports.GetReport(r.Context(), dto.ReportType, report.Filters{
		BudgetID:           dto.BudgetID,
		FinancialCompanyID: dto.FinancialCompanyID,
		MonthFrom:          dto.MonthFrom,
		MonthTo:            dto.MonthTo,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if err := h.exporter.Export(r.Context(), dto.SpreadsheetID, dto.Title, result); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
