package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

type Handler struct {
	Store *attendance.Store
}

func NewHandler(store *attendance.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListMonth)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/break", h.handleBreak)
		r.Post("/check-out", h.handleCheckOut)
	})
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	record, err := h.Store.CheckIn(r.Context(), user.EmployeeID, time.Now().UTC())
	if err != nil {
		failAttendance(w, r, err)
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBreak(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	record, err := h.Store.StartBreak(r.Context(), user.EmployeeID, time.Now().UTC())
	if err != nil {
		failAttendance(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

type checkOutRequest struct {
	BreakMinutes int `json:"breakMinutes"`
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload checkOutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}
	if payload.BreakMinutes < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "break minutes must not be negative", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Store.CheckOut(r.Context(), user.EmployeeID, time.Now().UTC(), payload.BreakMinutes)
	if err != nil {
		failAttendance(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListMonth(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	p := payroll.PeriodOf(time.Now().UTC())
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := payroll.ParsePeriod(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be YYYY-MM", middleware.GetRequestID(r.Context()))
			return
		}
		p = parsed
	}

	records, err := h.Store.ListForRange(r.Context(), user.EmployeeID, p.Start(), p.Next())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func failAttendance(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		api.Fail(w, http.StatusConflict, "already_checked_in", "already checked in today", requestID)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		api.Fail(w, http.StatusConflict, "not_checked_in", "no open attendance record today", requestID)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		api.Fail(w, http.StatusConflict, "already_checked_out", "already checked out today", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "attendance operation failed", requestID)
	}
}
