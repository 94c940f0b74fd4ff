package budgetline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/techbudget/techbudget/internal/rest"
)

type BudgetLineDTO struct {
	ID                    int       `json:"id"`
	BudgetID              int       `json:"budgetId"`
	ExpenseID             int       `json:"expenseId"`
	FinancialCompanyID    int       `json:"financialCompanyId"`
	TechnologyDirectionID *int      `json:"technologyDirectionId,omitempty"`
	Currency              string    `json:"currency"`
	Plan                  []float64 `json:"plan"`
	Total                 float64   `json:"total"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAllForBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := strconv.Atoi(r.URL.Query().Get("budgetId"))
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("budgetId is required"))
		return
	}
	lines, err := h.service.GetAllForBudget(r.Context(), budgetId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]BudgetLineDTO, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, lineToDTO(line))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid budget line id"))
		return
	}
	line, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("budget line not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(lineToDTO(line)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto BudgetLineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.Create(r.Context(), dtoToLine(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(lineToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid budget line id"))
		return
	}
	var dto BudgetLineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	line := dtoToLine(dto)
	line.ID = id
	if err := h.service.Update(r.Context(), line); err != nil {
		if errors.Is(err, ErrLineNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("budget line not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid budget line id"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrLineNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("budget line not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func lineToDTO(line BudgetLine) BudgetLineDTO {
	plan := make([]float64, 12)
	for i, v := range line.Plan {
		plan[i] = v.InexactFloat64()
	}
	return BudgetLineDTO{
		ID:                    line.ID,
		BudgetID:              line.BudgetID,
		ExpenseID:             line.ExpenseID,
		FinancialCompanyID:    line.FinancialCompanyID,
		TechnologyDirectionID: line.TechnologyDirectionID,
		Currency:              line.Currency,
		Plan:                  plan,
		Total:                 line.MonthTotal().InexactFloat64(),
	}
}

func dtoToLine(dto BudgetLineDTO) BudgetLine {
	line := BudgetLine{
		ID:                    dto.ID,
		BudgetID:              dto.BudgetID,
		ExpenseID:             dto.ExpenseID,
		FinancialCompanyID:    dto.FinancialCompanyID,
		TechnologyDirectionID: dto.TechnologyDirectionID,
		Currency:              dto.Currency,
	}
	for i := 0; i < 12 && i < len(dto.Plan); i++ {
		line.Plan[i] = decimal.NewFromFloat(dto.Plan[i])
	}
	return line
}
