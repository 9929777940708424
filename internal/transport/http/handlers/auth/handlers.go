package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/auth"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

type Handler struct {
	DB       *pgxpool.Pool
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(db *pgxpool.Pool, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{DB: db, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	var userID, hash, employeeID, role, departmentID, firstName, lastName string
	err := h.DB.QueryRow(r.Context(), `
    SELECT u.id, u.password_hash, e.id, e.role, e.department_id, u.first_name, u.last_name
    FROM users u
    JOIN employees e ON e.user_id = u.id
    WHERE u.email = $1 AND e.status = 'active'
  `, email).Scan(&userID, &hash, &employeeID, &role, &departmentID, &firstName, &lastName)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:       userID,
		EmployeeID:   employeeID,
		Role:         role,
		DepartmentID: departmentID,
	}, h.TokenTTL)
	if err != nil {
		slog.Error("token generation failed", "userId", userID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":           userID,
			"employeeId":   employeeID,
			"role":         role,
			"departmentId": departmentID,
			"firstName":    firstName,
			"lastName":     lastName,
		},
	}, middleware.GetRequestID(r.Context()))
}
