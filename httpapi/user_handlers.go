package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"devroom/auth"
	"devroom/services"
)

// UserHandlers exposes the account endpoints: register, login, profile,
// logout and the password reset flow.
type UserHandlers struct {
	authService services.IAuthService
	resetURL    string
	log         *slog.Logger
}

func NewUserHandlers(authService services.IAuthService, resetURL string, log *slog.Logger) *UserHandlers {
	return &UserHandlers{authService: authService, resetURL: resetURL, log: log}
}

func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, fmt.Errorf("invalid request body"))
		return
	}
	if err := auth.ValidateRegister(req); err != nil {
		respondValidation(w, err)
		return
	}

	user, token, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	setTokenCookie(w, string(token))
	respondJSON(w, http.StatusCreated, map[string]any{"user": user, "token": token})
}

func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, fmt.Errorf("invalid request body"))
		return
	}
	if err := auth.ValidateLogin(req); err != nil {
		respondValidation(w, err)
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	setTokenCookie(w, string(token))
	respondJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

func (h *UserHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"errors": "unauthorized"})
		return
	}

	user, err := h.authService.Profile(identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"msg": "logged out"})
}

// ForgotPassword always answers 200 so the endpoint cannot be used to probe
// which emails have an account.
func (h *UserHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ForgotPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, fmt.Errorf("invalid request body"))
		return
	}
	if err := auth.ValidateForgotPassword(req); err != nil {
		respondValidation(w, err)
		return
	}

	if err := h.authService.ForgotPassword(req.Email, h.resetURL); err != nil {
		h.log.Error("Password reset mail failed", "error", err)
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"msg": "if that email exists, a reset link has been sent",
	})
}

func (h *UserHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, fmt.Errorf("invalid request body"))
		return
	}
	if err := auth.ValidateResetPassword(req); err != nil {
		respondValidation(w, err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"msg": "password updated"})
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
