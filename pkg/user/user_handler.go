package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/techbudget/techbudget/internal/rest"
)

type UserDTO struct {
	Id       int    `json:"id"`
	Uid      string `json:"uid"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	user, err := h.service.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) || errors.Is(err, ErrUserNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("user not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(userToDTO(user)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, rest.NewValidationError(err.Error()))
		return
	}
	if dto.Username == "" {
		rest.WriteError(w, rest.NewValidationError("username is required"))
		return
	}

	created, err := h.service.CreateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, userToDTO(u))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		rest.WriteError(w, rest.NewValidationError("invalid user id"))
		return
	}
	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			rest.WriteError(w, rest.NewNotFoundError("user not found"))
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userToDTO(user User) UserDTO {
	return UserDTO{Id: user.Id, Uid: user.Uid, Username: user.Username, FullName: user.FullName}
}

func dtoToUser(dto UserDTO) User {
	return User{Id: dto.Id, Uid: dto.Uid, Username: dto.Username, FullName: dto.FullName}
}
