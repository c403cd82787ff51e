package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/service"
)

// UserHandler serves account management — admin-only, every route.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type createUserRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// updateUserRequest uses pointers so "field absent" and "field set to empty"
// are distinguishable. Absent fields are left unchanged — the edit form only
// sends what the admin touched.
type updateUserRequest struct {
	Username *string     `json:"username"`
	Password *string     `json:"password"`
	Email    *string     `json:"email"`
	Role     *model.Role `json:"role"`
}

// existsResponse answers the live uniqueness probes.
type existsResponse struct {
	UsernameExists bool `json:"usernameExists"`
	EmailExists    bool `json:"emailExists"`
}

// HandleList returns all accounts, newest first.
//
// HTTP: GET /api/users (admin)
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleGet returns a single account.
//
// HTTP: GET /api/users/{id} (admin)
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleCreate registers a new account.
//
// HTTP: POST /api/users (admin)
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleUpdate applies a partial edit to an account.
//
// HTTP: PUT /api/users/{id} (admin)
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Update(r.Context(), r.PathValue("id"), service.UpdateUserParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleDelete removes an account. Deleting the last remaining admin
// answers 403 and changes nothing.
//
// HTTP: DELETE /api/users/{id} (admin)
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExists answers the uniqueness pre-checks the account form runs
// while the admin types.
//
// HTTP: GET /api/users/exists?username=x&email=y&exclude=id (admin)
//
// Empty query values report false; exclude carries the id of the record
// being edited so it doesn't collide with itself.
func (h *UserHandler) HandleExists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username := q.Get("username")
	email := q.Get("email")
	excludeID := q.Get("exclude")

	var resp existsResponse

	if username != "" {
		taken, err := h.users.UsernameExists(r.Context(), username, excludeID)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.UsernameExists = taken
	}
	if email != "" {
		taken, err := h.users.EmailExists(r.Context(), email, excludeID)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.EmailExists = taken
	}

	writeJSON(w, http.StatusOK, resp)
}
