package savings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/techbudget/techbudget/internal/rest"
)

type SavingDTO struct {
	ID           int       `json:"id"`
	BudgetLineID int       `json:"budgetLineId"`
	TotalAmount  float64   `json:"totalAmount"`
	Monthly      []float64 `json:"monthly"`
	Status       string    `json:"status"`
	CreatedBy    int       `json:"createdBy"`
}

type DeferralDTO struct {
	ID           int     `json:"id"`
	BudgetLineID int     `json:"budgetLineId"`
	TotalAmount  float64 `json:"totalAmount"`
	StartMonth   int     `json:"startMonth"`
	EndMonth     int     `json:"endMonth"`
	CreatedBy    int     `json:"createdBy"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateSaving(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto SavingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.CreateSaving(r.Context(), dtoToSaving(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(savingToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ApproveSaving(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid saving id"))
		return
	}
	if err := h.service.ApproveSaving(r.Context(), id); err != nil {
		if errors.Is(err, ErrSavingNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("saving not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteSaving(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid saving id"))
		return
	}
	if err := h.service.DeleteSaving(r.Context(), id); err != nil {
		if errors.Is(err, ErrSavingNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("saving not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateDeferral(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto DeferralDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.CreateDeferral(r.Context(), dtoToDeferral(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(deferralToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteDeferral(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid deferral id"))
		return
	}
	if err := h.service.DeleteDeferral(r.Context(), id); err != nil {
		if errors.Is(err, ErrDeferralNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("deferral not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func savingToDTO(saving Saving) SavingDTO {
	monthly := make([]float64, 12)
	for i, v := range saving.Monthly {
		monthly[i] = v.InexactFloat64()
	}
	return SavingDTO{
		ID:           saving.ID,
		BudgetLineID: saving.BudgetLineID,
		TotalAmount:  saving.TotalAmount.InexactFloat64(),
		Monthly:      monthly,
		Status:       saving.Status,
		CreatedBy:    saving.CreatedBy,
	}
}

func dtoToSaving(dto SavingDTO) Saving {
	saving := Saving{
		ID:           dto.ID,
		BudgetLineID: dto.BudgetLineID,
		TotalAmount:  decimal.NewFromFloat(dto.TotalAmount),
	}
	for i := 0; i < 12 && i < len(dto.Monthly); i++ {
		saving.Monthly[i] = decimal.NewFromFloat(dto.Monthly[i])
	}
	return saving
}

func deferralToDTO(deferral Deferral) DeferralDTO {
	return DeferralDTO{
		ID:           deferral.ID,
		BudgetLineID: deferral.BudgetLineID,
		TotalAmount:  deferral.TotalAmount.InexactFloat64(),
		StartMonth:   deferral.StartMonth,
		EndMonth:     deferral.EndMonth,
		CreatedBy:    deferral.CreatedBy,
	}
}

func dtoToDeferral(dto DeferralDTO) Deferral {
	return Deferral{
		ID:           dto.ID,
		BudgetLineID: dto.BudgetLineID,
		TotalAmount:  decimal.NewFromFloat(dto.TotalAmount),
		StartMonth:   dto.StartMonth,
		EndMonth:     dto.EndMonth,
	}
}
