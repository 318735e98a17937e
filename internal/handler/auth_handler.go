package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
	"go.uber.org/zap"
)

const forgotPasswordMessage = "if the email exists, a code has been sent"

type AuthService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	Refresh(ctx context.Context, token string) (*domain.AuthResult, error)
	Logout(ctx context.Context, userID int64) error
	Me(ctx context.Context, userID int64) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, req domain.ChangePasswordRequest) error
	Deactivate(ctx context.Context, userID int64, password string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
}

type AuthHandler struct {
	Base
	auth    AuthService
	pending sync.WaitGroup
}

func NewAuthHandler(base Base, auth AuthService) *AuthHandler {
	return &AuthHandler{Base: base, auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.auth.Logout(r.Context(), userID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.auth.Me(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.ChangePasswordRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), userID, req); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed, please log in again"})
}

func (h *AuthHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.DeactivateRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.auth.Deactivate(r.Context(), userID, req.Password); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deactivated"})
}

// ForgotPassword always answers the same way; the lookup and the mail run in
// the background so response time does not reveal whether the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := decode(r, &req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusOK, map[string]string{"message": forgotPasswordMessage})
		return
	}

	h.pending.Add(1)
	go func(email string) {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.auth.ForgotPassword(ctx, email); err != nil {
			h.Log.Error("forgot-password failed", zap.Error(err))
		}
	}(req.Email)

	writeJSON(w, http.StatusOK, map[string]string{"message": forgotPasswordMessage})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset successful"})
}

// Wait blocks until background forgot-password work has finished or ctx is
// done.
func (h *AuthHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
