package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Store     *leave.Store
	Employees *core.Store
}

func NewHandler(store *leave.Store, employees *core.Store) *Handler {
	return &Handler{Store: store, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/types", h.handleListTypes)
		r.Get("/requests", h.handleListRequests)
		r.Post("/requests", h.handleSubmit)
		r.With(middleware.RequireManager).Get("/requests/pending", h.handlePendingInbox)
		r.With(middleware.RequireManager).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireManager).Post("/requests/{requestID}/reject", h.handleReject)
		r.Post("/requests/{requestID}/cancel", h.handleCancel)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.ListTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_types_failed", "failed to list leave types", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, types, middleware.GetRequestID(r.Context()))
}

type submitRequest struct {
	LeaveTypeID string `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("leaveTypeId", payload.LeaveTypeID, "leave type is required")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	request, err := h.Store.Submit(r.Context(), user.EmployeeID, payload.LeaveTypeID, start, end, payload.Reason)
	if errors.Is(err, leave.ErrLeaveTypeNotFound) {
		api.Fail(w, http.StatusNotFound, "leave_type_not_found", "leave type not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_submit_failed", "failed to submit leave request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requests, err := h.Store.ListForEmployee(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePendingInbox(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requests, err := h.Store.ListPendingForDepartment(r.Context(), user.DepartmentID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_inbox_failed", "failed to list pending requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusRejected)
}

// decide applies a manager's approval or rejection. The requester must be in
// the manager's department, and managers never decide their own requests.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status string) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	request, err := h.Store.RequestByID(r.Context(), requestID)
	if errors.Is(err, leave.ErrRequestNotFound) {
		api.Fail(w, http.StatusNotFound, "leave_request_not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_decide_failed", "failed to load leave request", middleware.GetRequestID(r.Context()))
		return
	}

	requester, err := h.Employees.EmployeeByID(r.Context(), request.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_decide_failed", "failed to load requester", middleware.GetRequestID(r.Context()))
		return
	}
	if requester.DepartmentID != user.DepartmentID || request.EmployeeID == user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.Decide(r.Context(), requestID, status, user.EmployeeID)
	if errors.Is(err, leave.ErrInvalidTransition) {
		api.Fail(w, http.StatusConflict, "invalid_transition", "request is not pending", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_decide_failed", "failed to update leave request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	updated, err := h.Store.Cancel(r.Context(), requestID, user.EmployeeID)
	switch {
	case errors.Is(err, leave.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "leave_request_not_found", "leave request not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, leave.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "request is not pending", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_cancel_failed", "failed to cancel leave request", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, updated, middleware.GetRequestID(r.Context()))
	}
}
