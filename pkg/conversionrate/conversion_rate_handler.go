package conversionrate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/techbudget/techbudget/internal/rest"
)

type ConversionRateDTO struct {
	ID       int     `json:"id"`
	BudgetID int     `json:"budgetId"`
	Currency string  `json:"currency"`
	Month    int     `json:"month"`
	Rate     float64 `json:"rate"`
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
	rates, err := h.service.GetAllForBudget(r.Context(), budgetId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]ConversionRateDTO, 0, len(rates))
	for _, rate := range rates {
		dtos = append(dtos, rateToDTO(rate))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto ConversionRateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.Create(r.Context(), dtoToRate(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(rateToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid conversion rate id"))
		return
	}
	var dto ConversionRateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	rate := dtoToRate(dto)
	rate.ID = id
	if err := h.service.Update(r.Context(), rate); err != nil {
		if errors.Is(err, ErrRateNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("conversion rate not found"))
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
		rest.WriteError(w, rest.NewValidationError("invalid conversion rate id"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRateNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("conversion rate not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func rateToDTO(rate ConversionRate) ConversionRateDTO {
	return ConversionRateDTO{
		ID:       rate.ID,
		BudgetID: rate.BudgetID,
		Currency: rate.Currency,
		Month:    rate.Month,
		Rate:     rate.Rate.InexactFloat64(),
	}
}

func dtoToRate(dto ConversionRateDTO) ConversionRate {
	return ConversionRate{
		ID:       dto.ID,
		BudgetID: dto.BudgetID,
		Currency: dto.Currency,
		Month:    dto.Month,
		Rate:     decimal.NewFromFloat(dto.Rate),
	}
}
