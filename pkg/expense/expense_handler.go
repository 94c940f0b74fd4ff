package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/techbudget/techbudget/internal/rest"
)

type ExpenseDTO struct {
	ID                     int    `json:"id"`
	Code                   string `json:"code"`
	ShortDescription       string `json:"shortDescription"`
	LongDescription        string `json:"longDescription,omitempty"`
	FinancialCompanyID     int    `json:"financialCompanyId"`
	ParentExpenseID        *int   `json:"parentExpenseId,omitempty"`
	Active                 bool   `json:"active"`
	TechnologyDirectionIDs []int  `json:"technologyDirectionIds"`
	UserAreaIDs            []int  `json:"userAreaIds"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	includeInactive := r.URL.Query().Has("includeInactive")

	expenses, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, expenseToDTO(e))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid expense id"))
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("expense not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(expenseToDTO(e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}

	created, err := h.service.Create(r.Context(), dtoToExpense(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid expense id"))
		return
	}
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, rest.NewValidationError("invalid expense id in request body"))
		return
	}

	if err := h.service.Update(r.Context(), dtoToExpense(dto)); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("expense not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid expense id"))
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("expense not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func expenseToDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:                     e.ID,
		Code:                   e.Code,
		ShortDescription:       e.ShortDescription,
		LongDescription:        e.LongDescription,
		FinancialCompanyID:     e.FinancialCompanyID,
		ParentExpenseID:        e.ParentExpenseID,
		Active:                 e.Active,
		TechnologyDirectionIDs: e.TechnologyDirectionIDs,
		UserAreaIDs:            e.UserAreaIDs,
	}
}

func dtoToExpense(dto ExpenseDTO) Expense {
	return Expense{
		ID:                     dto.ID,
		Code:                   dto.Code,
		ShortDescription:       dto.ShortDescription,
		LongDescription:        dto.LongDescription,
		FinancialCompanyID:     dto.FinancialCompanyID,
		ParentExpenseID:        dto.ParentExpenseID,
		Active:                 dto.Active,
		TechnologyDirectionIDs: dto.TechnologyDirectionIDs,
		UserAreaIDs:            dto.UserAreaIDs,
	}
}
