package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"go-signpdf/internal/services"
	"go-signpdf/internal/store"
	"go-signpdf/types"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	Message string      `json:"message,omitempty"`
	User    *types.User `json:"user,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates a user account and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse  "Missing fields"
// @Failure      409  {object}  ErrorResponse  "Email already in use"
// @Router       /api/register [post]
func (h *APIHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	_, token, err := h.Accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already in use")
			return
		}
		h.log.Error("register failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Token: token, Message: "account created"})
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse  "Missing fields"
// @Failure      401  {object}  ErrorResponse  "Invalid credentials"
// @Router       /api/login [post]
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Token: token, User: &user})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/logout [post]
func (h *APIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.Accounts.Logout(r.Context(), token); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "logged out"})
}

// Me godoc
// @Summary      Current user
// @Description  Returns the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.User
// @Failure      401  {object}  ErrorResponse
// @Router       /api/me [get]
func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteAccount godoc
// @Summary      Delete account
// @Description  Removes the account, its sessions and saved signatures; history rows are anonymized
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/account [delete]
func (h *APIHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.Accounts.Delete(r.Context(), user.ID); err != nil {
		h.log.Error("account deletion failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "account deleted"})
}
