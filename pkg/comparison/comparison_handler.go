package comparison

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/pkg/budget"
)

type ComparisonRowDTO struct {
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	MonthlyA      []float64 `json:"monthlyA"`
	MonthlyB      []float64 `json:"monthlyB"`
	TotalA        float64   `json:"totalA"`
	TotalB        float64   `json:"totalB"`
	Difference    float64   `json:"difference"`
	PercentChange float64   `json:"percentChange"`
}

type ComparisonSummaryDTO struct {
	TotalA         float64 `json:"totalA"`
	TotalB         float64 `json:"totalB"`
	Difference     float64 `json:"difference"`
	PercentChange  float64 `json:"percentChange"`
	NewCount       int     `json:"newCount"`
	RemovedCount   int     `json:"removedCount"`
	ModifiedCount  int     `json:"modifiedCount"`
	UnchangedCount int     `json:"unchangedCount"`
}

type ComparisonDTO struct {
	Rows    []ComparisonRowDTO   `json:"rows"`
	Summary ComparisonSummaryDTO `json:"summary"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Compare serves GET /api/comparison?budgetA=..&budgetB=..
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetAId, err := strconv.Atoi(r.URL.Query().Get("budgetA"))
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("budgetA is required"))
		return
	}
	budgetBId, err := strconv.Atoi(r.URL.Query().Get("budgetB"))
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("budgetB is required"))
		return
	}

	result, err := h.service.Compare(r.Context(), budgetAId, budgetBId)
	if err != nil {
		if errors.Is(err, budget.ErrBudgetNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("budget not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func resultToDTO(result Result) ComparisonDTO {
	rows := make([]ComparisonRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		monthlyA := make([]float64, 12)
		monthlyB := make([]float64, 12)
		for m := 0; m < 12; m++ {
			monthlyA[m] = row.MonthlyA[m].InexactFloat64()
			monthlyB[m] = row.MonthlyB[m].InexactFloat64()
		}
		rows = append(rows, ComparisonRowDTO{
			Code:          row.Code,
			Description:   row.Description,
			Status:        row.Status,
			MonthlyA:      monthlyA,
			MonthlyB:      monthlyB,
			TotalA:        row.TotalA.InexactFloat64(),
			TotalB:        row.TotalB.InexactFloat64(),
			Difference:    row.Difference.InexactFloat64(),
			PercentChange: row.PercentChange,
		})
	}
	return ComparisonDTO{
		Rows: rows,
		Summary: ComparisonSummaryDTO{
			TotalA:         result.Summary.TotalA.InexactFloat64(),
			TotalB:         result.Summary.TotalB.InexactFloat64(),
			Difference:     result.Summary.Difference.InexactFloat64(),
			PercentChange:  result.Summary.PercentChange,
			NewCount:       result.Summary.NewCount,
			RemovedCount:   result.Summary.RemovedCount,
			ModifiedCount:  result.Summary.ModifiedCount,
			UnchangedCount: result.Summary.UnchangedCount,
		},
	}
}
