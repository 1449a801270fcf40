package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"leaveadmin/internal/domain/auth"
	"leaveadmin/internal/domain/employee"
	"leaveadmin/internal/transport/http/api"
	"leaveadmin/internal/transport/http/middleware"
	"leaveadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleManager))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	activeOnly := r.URL.Query().Get("active") == "true"
	employees, err := h.Service.List(r.Context(), r.URL.Query().Get("role"), activeOnly)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

type employeePayload struct {
	Email            string  `json:"email"`
	FullName         string  `json:"fullName"`
	Role             string  `json:"role"`
	Password         string  `json:"password"`
	JoiningDate      string  `json:"joiningDate"`
	BirthDate        string  `json:"birthDate"`
	BaseSalary       string  `json:"baseSalary"`
	YearlyFreeLeaves float64 `json:"yearlyFreeLeaves"`
	IsActive         *bool   `json:"isActive"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	v.Enum("role", payload.Role, []string{auth.RoleManager, auth.RoleEmployee}, "role must be manager or employee")
	joining, _ := v.Date("joiningDate", payload.JoiningDate)
	salary, salaryErr := decimal.NewFromString(payload.BaseSalary)
	if salaryErr != nil || salary.IsNegative() {
		v.Add("baseSalary", "must be a non-negative number")
	}
	if v.Reject(w, reqID) {
		return
	}

	params := employee.CreateParams{
		Email:            payload.Email,
		FullName:         payload.FullName,
		Role:             payload.Role,
		Password:         payload.Password,
		JoiningDate:      joining,
		BaseSalary:       salary,
		YearlyFreeLeaves: decimal.NewFromFloat(payload.YearlyFreeLeaves),
	}
	if payload.BirthDate != "" {
		birth, err := shared.ParseDate(payload.BirthDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "birthDate must be a valid date", reqID)
			return
		}
		params.BirthDate = &birth
	}

	id, err := h.Service.Create(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrEmailInUse):
			api.Fail(w, http.StatusConflict, "email_in_use", "email already in use", reqID)
		case errors.Is(err, employee.ErrInvalidRole):
			api.Fail(w, http.StatusBadRequest, "invalid_role", "role must be manager or employee", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		}
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Enum("role", payload.Role, []string{auth.RoleManager, auth.RoleEmployee}, "role must be manager or employee")
	joining, _ := v.Date("joiningDate", payload.JoiningDate)
	salary, salaryErr := decimal.NewFromString(payload.BaseSalary)
	if salaryErr != nil || salary.IsNegative() {
		v.Add("baseSalary", "must be a non-negative number")
	}
	if v.Reject(w, reqID) {
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}
	params := employee.UpdateParams{
		FullName:         payload.FullName,
		Role:             payload.Role,
		JoiningDate:      joining,
		BaseSalary:       salary,
		IsActive:         isActive,
		YearlyFreeLeaves: decimal.NewFromFloat(payload.YearlyFreeLeaves),
	}
	if payload.BirthDate != "" {
		birth, err := shared.ParseDate(payload.BirthDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "birthDate must be a valid date", reqID)
			return
		}
		params.BirthDate = &birth
	}

	if err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), params); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "employeeID")}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}
