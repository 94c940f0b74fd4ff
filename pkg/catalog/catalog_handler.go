package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/techbudget/techbudget/internal/rest"
)

type FinancialCompanyDTO struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type NamedEntryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]FinancialCompanyDTO, 0, len(companies))
	for _, c := range companies {
		dtos = append(dtos, FinancialCompanyDTO{ID: c.ID, Code: c.Code, Name: c.Name})
	}
	encode(w, dtos)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto FinancialCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.CreateCompany(r.Context(), FinancialCompany{Code: dto.Code, Name: dto.Name})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	encode(w, FinancialCompanyDTO{ID: created.ID, Code: created.Code, Name: created.Name})
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathId(r)
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid company id"))
		return
	}
	var dto FinancialCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	err = h.service.UpdateCompany(r.Context(), FinancialCompany{ID: id, Code: dto.Code, Name: dto.Name})
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	h.deleteEntry(w, r, h.service.DeleteCompany)
}

func (h *Handler) ListTechDirections(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	directions, err := h.service.ListTechDirections(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]NamedEntryDTO, 0, len(directions))
	for _, d := range directions {
		dtos = append(dtos, NamedEntryDTO{ID: d.ID, Name: d.Name})
	}
	encode(w, dtos)
}

func (h *Handler) CreateTechDirection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto NamedEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.CreateTechDirection(r.Context(), TechnologyDirection{Name: dto.Name})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	encode(w, NamedEntryDTO{ID: created.ID, Name: created.Name})
}

func (h *Handler) DeleteTechDirection(w http.ResponseWriter, r *http.Request) {
	h.deleteEntry(w, r, h.service.DeleteTechDirection)
}

func (h *Handler) ListUserAreas(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	areas, err := h.service.ListUserAreas(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]NamedEntryDTO, 0, len(areas))
	for _, a := range areas {
		dtos = append(dtos, NamedEntryDTO{ID: a.ID, Name: a.Name})
	}
	encode(w, dtos)
}

func (h *Handler) CreateUserArea(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto NamedEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	created, err := h.service.CreateUserArea(r.Context(), UserArea{Name: dto.Name})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	encode(w, NamedEntryDTO{ID: created.ID, Name: created.Name})
}

func (h *Handler) DeleteUserArea(w http.ResponseWriter, r *http.Request) {
	h.deleteEntry(w, r, h.service.DeleteUserArea)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request, deleteFn func(ctx context.Context, id int) error) {
	id, err := pathId(r)
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid id"))
		return
	}
	if err := deleteFn(r.Context(), id); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func writeCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrEntryNotFound) {
		rest.WriteError(w, rest.NewNotFoundError("catalog entry not found"))
		return
	}
	rest.WriteError(w, err)
}

func encode(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
