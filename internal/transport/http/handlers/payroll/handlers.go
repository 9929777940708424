package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

type Handler struct {
	Service *payroll.Service
	Metrics *metrics.Collector
}

func NewHandler(service *payroll.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/my-salary", h.handleMySalary)
		r.With(middleware.RequireManager).Get("/team-salary", h.handleTeamSalary)
		r.Get("/employee-salary/{employeeID}", h.handleEmployeeSalary)
		r.Get("/payslip", h.handlePayslip)
		r.With(middleware.RequireManager).Post("/set-base-salary", h.handleSetBaseSalary)
	})
}

// monthParam reads ?month=YYYY-MM, defaulting to the current month.
func monthParam(r *http.Request) (payroll.Period, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return payroll.PeriodOf(time.Now().UTC()), nil
	}
	return payroll.ParsePeriod(raw)
}

func (h *Handler) handleMySalary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	p, err := monthParam(r)
	if err != nil {
		failPayroll(w, r, err)
		return
	}

	breakdown, err := h.Service.ComputeMySalary(r.Context(), user.UserID, p)
	if err != nil {
		failPayroll(w, r, err)
		return
	}
	api.Success(w, breakdown, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTeamSalary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	p, err := monthParam(r)
	if err != nil {
		failPayroll(w, r, err)
		return
	}

	team, err := h.Service.ComputeTeamSalary(r.Context(), user.UserID, p)
	if err != nil {
		failPayroll(w, r, err)
		return
	}
	api.Success(w, team, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeSalary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	p, err := monthParam(r)
	if err != nil {
		failPayroll(w, r, err)
		return
	}

	breakdown, err := h.Service.ComputeEmployeeSalary(r.Context(), user.UserID, employeeID, p)
	if err != nil {
		failPayroll(w, r, err)
		return
	}
	api.Success(w, breakdown, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	p, err := monthParam(r)
	if err != nil {
		failPayroll(w, r, err)
		return
	}

	// Empty employeeId means the caller's own payslip.
	employeeID := r.URL.Query().Get("employeeId")
	data, filename, err := h.Service.RenderPayslipPDF(r.Context(), user.UserID, employeeID, p)
	if err != nil {
		failPayroll(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordPayslipRender()
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type setBaseSalaryRequest struct {
	EmployeeID string `json:"employeeId"`
	BaseSalary int64  `json:"baseSalary"`
}

func (h *Handler) handleSetBaseSalary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload setBaseSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee id required", middleware.GetRequestID(r.Context()))
		return
	}

	employee, err := h.Service.SetBaseSalary(r.Context(), user.UserID, payload.EmployeeID, payload.BaseSalary)
	if err != nil {
		failPayroll(w, r, err)
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func failPayroll(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, payroll.ErrUnauthorized), errors.Is(err, payroll.ErrManagerOnly):
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", requestID)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be YYYY-MM", requestID)
	case errors.Is(err, payroll.ErrInvalidSalary):
		api.Fail(w, http.StatusBadRequest, "invalid_salary", "base salary must not be negative", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "payroll calculation failed", requestID)
	}
}
