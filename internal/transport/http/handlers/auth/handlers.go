package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"leaveadmin/internal/domain/auth"
	"leaveadmin/internal/domain/employee"
	"leaveadmin/internal/transport/http/api"
	"leaveadmin/internal/transport/http/middleware"
	"leaveadmin/internal/transport/http/shared"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Employees *employee.Service
	JWTSecret string
}

func NewHandler(employees *employee.Service, jwtSecret string) *Handler {
	return &Handler{Employees: employees, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.With(middleware.RequireAuth).Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	cred, err := h.Employees.CredentialByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}
	if !cred.IsActive {
		api.Fail(w, http.StatusUnauthorized, "account_disabled", "account is disabled", reqID)
		return
	}
	if err := auth.CheckPassword(cred.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		EmployeeID:       cred.EmployeeID,
		Role:             cred.Role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: cred.Email},
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"role":  cred.Role,
	}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	emp, err := h.Employees.Get(r.Context(), user.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", reqID)
		return
	}
	api.Success(w, emp, reqID)
}
