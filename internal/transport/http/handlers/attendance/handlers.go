package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leaveadmin/internal/domain/attendance"
	"leaveadmin/internal/domain/auth"
	"leaveadmin/internal/transport/http/api"
	"leaveadmin/internal/transport/http/middleware"
	"leaveadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Get("/mine", h.handleMyHistory)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/report", h.handleDayReport)
	})
}

type checkPayload struct {
	ImageRef string `json:"imageRef"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload checkPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	rec, err := h.Service.CheckIn(r.Context(), user.EmployeeID, payload.ImageRef, time.Now().UTC())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			api.Fail(w, http.StatusConflict, "already_checked_in", "already checked in today", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to check in", reqID)
		return
	}
	api.Created(w, rec, reqID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload checkPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	rec, err := h.Service.CheckOut(r.Context(), user.EmployeeID, payload.ImageRef, time.Now().UTC())
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			api.Fail(w, http.StatusConflict, "not_checked_in", "no open check-in for today", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to check out", reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleMyHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	now := time.Now().UTC()
	from := now.AddDate(0, -1, 0)
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil {
			from = parsed
		}
	}
	to := now
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil {
			to = parsed
		}
	}

	records, err := h.Service.History(r.Context(), user.EmployeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_history_failed", "failed to list attendance", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleDayReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "date must be a valid date", reqID)
			return
		}
		date = parsed
	}

	entries, err := h.Service.DayReport(r.Context(), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_report_failed", "failed to build attendance report", reqID)
		return
	}
	api.Success(w, entries, reqID)
}
