package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leaveadmin/internal/domain/auth"
	"leaveadmin/internal/domain/employee"
	"leaveadmin/internal/domain/leave"
	"leaveadmin/internal/domain/notifications"
	"leaveadmin/internal/domain/salary"
	"leaveadmin/internal/transport/http/api"
	"leaveadmin/internal/transport/http/middleware"
	"leaveadmin/internal/transport/http/shared"
)

type Handler struct {
	Service   *leave.Service
	Employees *employee.Service
	Salary    *salary.Service
	Notify    *notifications.Service
}

func NewHandler(service *leave.Service, employees *employee.Service, salarySvc *salary.Service, notify *notifications.Service) *Handler {
	return &Handler{Service: service, Employees: employees, Salary: salarySvc, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/types", h.handleListTypes)
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/types", h.handleCreateType)
		r.Get("/holidays", h.handleListHolidays)
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/holidays", h.handleCreateHoliday)
		r.With(middleware.RequireRole(auth.RoleManager)).Delete("/holidays/{holidayID}", h.handleDeleteHoliday)
		r.Get("/requests", h.handleListRequests)
		r.Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/requests/{requestID}/reject", h.handleReject)
		r.With(middleware.RequireRole(auth.RoleManager)).Delete("/requests/{requestID}", h.handleDeleteRequest)
		r.Get("/summary", h.handleMySummary)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/summary/all", h.handleSummaryAll)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_types_failed", "failed to list leave types", reqID)
		return
	}
	api.Success(w, types, reqID)
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}
	id, err := h.Service.CreateType(r.Context(), payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_type_create_failed", "failed to create leave type", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListHolidays(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	holidays, err := h.Service.ListHolidays(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holidays_failed", "failed to list holidays", reqID)
		return
	}
	api.Success(w, holidays, reqID)
}

func (h *Handler) handleCreateHoliday(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, reqID) {
		return
	}
	id, err := h.Service.CreateHoliday(r.Context(), date, payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_create_failed", "failed to create holiday", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleDeleteHoliday(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.DeleteHoliday(r.Context(), chi.URLParam(r, "holidayID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_delete_failed", "failed to delete holiday", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if user.Role != auth.RoleManager {
		employeeID = user.EmployeeID
	}
	page := shared.ParsePagination(r, 50, 200)
	requests, err := h.Service.List(r.Context(), employeeID, r.URL.Query().Get("status"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", reqID)
		return
	}
	api.Success(w, requests, reqID)
}

type createRequestPayload struct {
	EmployeeID  string `json:"employeeId"`
	LeaveTypeID string `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsHalfDay   bool   `json:"isHalfDay"`
	Reason      string `json:"reason"`
}

// handleCreateRequest serves both submission paths. Employees file for
// themselves and get a pending request; a manager filing on someone's behalf
// gets an immediately approved request with the relaxed validation.
func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("leaveTypeId", payload.LeaveTypeID, "leaveTypeId is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, reqID) {
		return
	}

	params := leave.SubmitParams{
		EmployeeID:  user.EmployeeID,
		LeaveTypeID: payload.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		IsHalfDay:   payload.IsHalfDay,
		Reason:      payload.Reason,
	}

	onBehalf := user.Role == auth.RoleManager && payload.EmployeeID != "" && payload.EmployeeID != user.EmployeeID
	if onBehalf {
		params.EmployeeID = payload.EmployeeID
	}

	now := time.Now().UTC()
	var req leave.LeaveRequest
	var err error
	if onBehalf {
		req, err = h.Service.SubmitOnBehalf(r.Context(), params, now)
	} else {
		req, err = h.Service.Submit(r.Context(), params, now)
	}
	if err != nil {
		h.failSubmit(w, err, reqID)
		return
	}

	if onBehalf {
		// Manager submissions land approved, so payroll reflects them
		// right away.
		if recErr := h.Salary.RecomputeForLeave(r.Context(), req); recErr != nil {
			api.Fail(w, http.StatusInternalServerError, "salary_recompute_failed", "failed to update salary reports", reqID)
			return
		}
	} else if emp, empErr := h.Employees.Get(r.Context(), user.EmployeeID); empErr == nil {
		h.Notify.NotifyLeaveSubmitted(r.Context(), emp.FullName, req)
	}

	api.Created(w, map[string]string{"id": req.ID}, reqID)
}

func (h *Handler) failSubmit(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_range", err.Error(), reqID)
	case errors.Is(err, leave.ErrNotFuture):
		api.Fail(w, http.StatusBadRequest, "not_future", err.Error(), reqID)
	case errors.Is(err, leave.ErrDuplicateRange):
		api.Fail(w, http.StatusConflict, "duplicate_range", err.Error(), reqID)
	case errors.Is(err, leave.ErrOverlap):
		api.Fail(w, http.StatusConflict, "overlapping_leave", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_create_failed", "failed to create leave request", reqID)
	}
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status string) {
	reqID := middleware.GetRequestID(r.Context())

	req, err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "requestID"), status)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
		case errors.Is(err, leave.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "invalid_state", "leave request is not pending", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_decision_failed", "failed to update leave request", reqID)
		}
		return
	}

	// Approval changes the paid/unpaid split for every month the request
	// touches; the response waits for the recompute to land.
	if status == leave.StatusApproved {
		if err := h.Salary.RecomputeForLeave(r.Context(), req); err != nil {
			api.Fail(w, http.StatusInternalServerError, "salary_recompute_failed", "failed to update salary reports", reqID)
			return
		}
	}

	if emp, err := h.Employees.Get(r.Context(), req.EmployeeID); err == nil {
		h.Notify.NotifyLeaveDecision(r.Context(), emp.Email, req)
	}

	api.Success(w, req, reqID)
}

func (h *Handler) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	req, err := h.Service.Delete(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leave_delete_failed", "failed to delete leave request", reqID)
		return
	}

	// Deleting an approved request reverses its payroll impact: the fold
	// re-runs without the deleted rows.
	if req.Status == leave.StatusApproved {
		if err := h.Salary.RecomputeForLeave(r.Context(), req); err != nil {
			api.Fail(w, http.StatusInternalServerError, "salary_recompute_failed", "failed to update salary reports", reqID)
			return
		}
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleMySummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	now := time.Now().UTC()
	result, err := h.Service.Summarize(r.Context(), user.EmployeeID, now.Year(), now.Month())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_summary_failed", "failed to compute leave summary", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleSummaryAll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	summaries, err := h.Service.SummarizeAll(r.Context(), time.Now().UTC())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_summary_failed", "failed to compute leave summaries", reqID)
		return
	}
	api.Success(w, summaries, reqID)
}
