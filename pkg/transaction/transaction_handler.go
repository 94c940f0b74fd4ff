package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/techbudget/techbudget/internal/rest"
)

type TransactionDTO struct {
	ID                      int     `json:"id"`
	BudgetLineID            int     `json:"budgetLineId"`
	Type                    string  `json:"type"`
	ServiceDate             string  `json:"serviceDate"`
	PostingDate             string  `json:"postingDate"`
	ReferenceDocumentNumber string  `json:"referenceDocumentNumber,omitempty"`
	Currency                string  `json:"currency"`
	Value                   float64 `json:"value"`
	USDValue                float64 `json:"usdValue"`
	ConversionRate          float64 `json:"conversionRate"`
	Month                   int     `json:"month"`
	IsCompensated           bool    `json:"isCompensated"`
	CompensatedByID         *int    `json:"compensatedById,omitempty"`
}

type CompensateDTO struct {
	CommittedTransactionID int `json:"committedTransactionId"`
	RealTransactionID      int `json:"realTransactionId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAllForLine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetLineId, err := strconv.Atoi(r.URL.Query().Get("budgetLineId"))
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("budgetLineId is required"))
		return
	}
	transactions, err := h.service.GetAllForLine(r.Context(), budgetLineId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, tx := range transactions {
		dtos = append(dtos, transactionToDTO(tx))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid transaction id"))
		return
	}
	tx, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("transaction not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(transactionToDTO(tx)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	tx, err := dtoToTransaction(dto)
	if err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.Create(r.Context(), tx)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Compensate(w http.ResponseWriter, r *http.Request) {
	var dto CompensateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	err := h.service.Compensate(r.Context(), dto.CommittedTransactionID, dto.RealTransactionID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("transaction not found"))
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
		rest.WriteError(w, rest.NewValidationError("invalid transaction id"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("transaction not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const dateLayout = "2006-01-02"

func transactionToDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		ID:                      tx.ID,
		BudgetLineID:            tx.BudgetLineID,
		Type:                    tx.Type,
		ServiceDate:             tx.ServiceDate.Format(dateLayout),
		PostingDate:             tx.PostingDate.Format(dateLayout),
		ReferenceDocumentNumber: tx.ReferenceDocumentNumber,
		Currency:                tx.Currency,
		Value:                   tx.Value.InexactFloat64(),
		USDValue:                tx.USDValue.InexactFloat64(),
		ConversionRate:          tx.ConversionRate.InexactFloat64(),
		Month:                   tx.Month,
		IsCompensated:           tx.IsCompensated,
		CompensatedByID:         tx.CompensatedByID,
	}
}

func dtoToTransaction(dto TransactionDTO) (Transaction, error) {
	serviceDate, err := time.Parse(dateLayout, dto.ServiceDate)
	if err != nil {
		return Transaction{}, errors.New("serviceDate must be formatted as YYYY-MM-DD")
	}
	postingDate, err := time.Parse(dateLayout, dto.PostingDate)
	if err != nil {
		return Transaction{}, errors.New("postingDate must be formatted as YYYY-MM-DD")
	}
	return Transaction{
		ID:                      dto.ID,
		BudgetLineID:            dto.BudgetLineID,
		Type:                    dto.Type,
		ServiceDate:             serviceDate,
		PostingDate:             postingDate,
		ReferenceDocumentNumber: dto.ReferenceDocumentNumber,
		Currency:                dto.Currency,
		Value:                   decimal.NewFromFloat(dto.Value),
		Month:                   dto.Month,
	}, nil
}
