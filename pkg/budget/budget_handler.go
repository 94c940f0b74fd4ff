package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/techbudget/techbudget/internal/rest"
)

type BudgetDTO struct {
	ID        int       `json:"id"`
	Year      int       `json:"year"`
	Version   int       `json:"version"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBudgetDTO struct {
	Year           int  `json:"year"`
	SourceBudgetId *int `json:"sourceBudgetId,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgets, err := h.service.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, budgetToDTO(b))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathId(r)
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid budget id"))
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("budget not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(budgetToDTO(b)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto CreateBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}

	var created Budget
	var err error
	if dto.SourceBudgetId != nil {
		created, err = h.service.Clone(r.Context(), *dto.SourceBudgetId)
	} else {
		created, err = h.service.Create(r.Context(), dto.Year)
	}
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("source budget not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(budgetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid budget id"))
		return
	}
	if err := h.service.Activate(r.Context(), id); err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("budget not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid budget id"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("budget not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func budgetToDTO(b Budget) BudgetDTO {
	return BudgetDTO{
		ID:        b.ID,
		Year:      b.Year,
		Version:   b.Version,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}
