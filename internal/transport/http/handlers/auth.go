package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/task-service/internal/application/auth"
	"github.com/taskhive/task-service/internal/domain"
	"github.com/taskhive/task-service/internal/transport/http/dto"
	"github.com/taskhive/task-service/internal/transport/http/middleware"
	"github.com/taskhive/task-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.RegisterResponse{
		Success: true,
		Message: "registration successful, please check your email to verify your account",
		User:    dto.NewUserPayload(&res.User),
	})
}

// VerifyEmail handles GET /api/auth/verify-email/{token}.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.WriteError(w, r, domain.ErrVerificationTokenInvalid())
		return
	}

	if err := h.svc.VerifyEmail(r.Context(), token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{
		Success: true,
		Message: "email verified successfully, you can now log in",
	})
}

// ResendVerification handles POST /api/auth/verify-email/resend. The reply
// is identical whether or not the address exists.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{
		Success: true,
		Message: "if that account exists, a verification email has been sent",
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	// Field presence is checked in the service so the missing-field and
	// invalid-credentials paths stay in one place.
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.LoginResponse{
		Success: true,
		Message: "login successful",
		Token:   res.Token,
		User:    dto.NewUserPayload(&res.User),
	})
}

// Me handles GET /api/auth/me for the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeResponse{
		Success: true,
		User:    dto.NewUserPayload(&u),
	})
}

// PasswordResetRequest handles POST /api/auth/password-reset/request. Like
// resend, it never reveals whether the address is registered.
func (h *AuthHandler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{
		Success: true,
		Message: "if that account exists, a password reset email has been sent",
	})
}

// PasswordResetConfirm handles POST /api/auth/password-reset/confirm.
func (h *AuthHandler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirmRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{
		Success: true,
		Message: "password has been reset, you can now log in",
	})
}
