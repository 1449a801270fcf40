package salaryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"leaveadmin/internal/domain/auth"
	"leaveadmin/internal/domain/employee"
	"leaveadmin/internal/domain/salary"
	"leaveadmin/internal/transport/http/api"
	"leaveadmin/internal/transport/http/middleware"
	"leaveadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *salary.Service
}

func NewHandler(service *salary.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/reports", h.handleListReports)
		r.Get("/reports/mine", h.handleMyReports)
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/reports/{reportID}/pay", h.handleMarkPaid)
		r.With(middleware.RequireRole(auth.RoleManager)).Put("/reports/{reportID}/bonus", h.handleSetBonus)
		r.Get("/reports/{reportID}/payslip", h.handlePayslip)
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/adjustments", h.handleApplyAdjustment)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/adjustments", h.handleListAdjustments)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/adjustments/history", h.handleListHistory)
	})
}

func yearMonth(r *http.Request) (int, time.Month) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			year = v
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = time.Month(v)
		}
	}
	return year, month
}

// handleListReports is the eager generation path: viewing a month first
// brings every employee's row up to date, then returns the list.
func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	year, month := yearMonth(r)

	if err := h.Service.GenerateMonthReports(r.Context(), year, month); err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_generate_failed", "failed to generate salary reports", reqID)
		return
	}
	reports, err := h.Service.ListReports(r.Context(), year, month, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salary reports", reqID)
		return
	}
	api.Success(w, reports, reqID)
}

func (h *Handler) handleMyReports(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	year, month := yearMonth(r)

	reports, err := h.Service.ListReports(r.Context(), year, month, user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salary reports", reqID)
		return
	}
	api.Success(w, reports, reqID)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.MarkPaid(r.Context(), chi.URLParam(r, "reportID")); err != nil {
		if errors.Is(err, salary.ErrReportNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary report not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "salary_pay_failed", "failed to mark report paid", reqID)
		return
	}
	api.Success(w, map[string]bool{"paid": true}, reqID)
}

func (h *Handler) handleSetBonus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		Bonus string `json:"bonus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	bonus, err := decimal.NewFromString(payload.Bonus)
	if err != nil || bonus.IsNegative() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "bonus must be a non-negative number", reqID)
		return
	}

	if err := h.Service.SetBonus(r.Context(), chi.URLParam(r, "reportID"), bonus); err != nil {
		switch {
		case errors.Is(err, salary.ErrReportNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "salary report not found", reqID)
		case errors.Is(err, salary.ErrReportPaid):
			api.Fail(w, http.StatusConflict, "report_paid", "report is already paid", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "salary_bonus_failed", "failed to update bonus", reqID)
		}
		return
	}
	api.Success(w, map[string]bool{"updated": true}, reqID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	reportID := chi.URLParam(r, "reportID")

	report, err := h.Service.GetReport(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, salary.ErrReportNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary report not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load salary report", reqID)
		return
	}
	if user.Role != auth.RoleManager && report.EmployeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your payslip", reqID)
		return
	}

	filePath, err := h.Service.GeneratePayslipPDF(r.Context(), reportID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to generate payslip", reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip.pdf"`)
	http.ServeFile(w, r, filePath)
}

type adjustmentPayload struct {
	EmployeeID         string  `json:"employeeId"`
	Year               int     `json:"year"`
	Month              int     `json:"month"`
	LeavesTaken        float64 `json:"leavesTaken"`
	FreeLeavesUsed     float64 `json:"freeLeavesUsed"`
	PaidLeavesDeducted float64 `json:"paidLeavesDeducted"`
	OneDaySalary       string  `json:"oneDaySalary"`
}

func (h *Handler) handleApplyAdjustment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload adjustmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	if payload.Year <= 0 {
		v.Add("year", "must be a positive year")
	}
	if payload.Month < 1 || payload.Month > 12 {
		v.Add("month", "must be between 1 and 12")
	}
	if payload.FreeLeavesUsed < 0 || payload.PaidLeavesDeducted < 0 || payload.LeavesTaken < 0 {
		v.Add("leaves", "day counts must be non-negative")
	}
	oneDay, oneDayErr := decimal.NewFromString(payload.OneDaySalary)
	if oneDayErr != nil || oneDay.IsNegative() {
		v.Add("oneDaySalary", "must be a non-negative number")
	}
	if v.Reject(w, reqID) {
		return
	}

	adj, err := h.Service.ApplyAdjustment(r.Context(), salary.AdjustmentParams{
		EmployeeID:         payload.EmployeeID,
		Year:               payload.Year,
		Month:              time.Month(payload.Month),
		LeavesTaken:        payload.LeavesTaken,
		FreeLeavesUsed:     payload.FreeLeavesUsed,
		PaidLeavesDeducted: payload.PaidLeavesDeducted,
		OneDaySalary:       oneDay,
	})
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "adjustment_failed", "failed to apply adjustment", reqID)
		return
	}
	api.Success(w, adj, reqID)
}

func (h *Handler) handleListAdjustments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	year, _ := yearMonth(r)
	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", reqID)
		return
	}
	adjustments, err := h.Service.ListAdjustments(r.Context(), employeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "adjustment_list_failed", "failed to list adjustments", reqID)
		return
	}
	api.Success(w, adjustments, reqID)
}

func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	year, month := yearMonth(r)
	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", reqID)
		return
	}
	history, err := h.Service.ListHistory(r.Context(), employeeID, year, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "adjustment_history_failed", "failed to list adjustment history", reqID)
		return
	}
	api.Success(w, history, reqID)
}
