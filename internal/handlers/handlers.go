// Package handlers provides the HTTP handlers for the PDF signing API.
//
// This package contains the endpoints for accounts and sessions, PDF upload,
// signing, download, the saved-signature library, and signing history.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(accounts, signing, library, history, cfg, logger)
//	r := chi.NewRouter()
//	r.Post("/api/upload", h.Upload)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"go-signpdf/config"
	"go-signpdf/internal/services"
)

type APIHandler struct {
	Accounts *services.AccountService
	Signing  *services.SigningService
	Library  *services.SignatureService
	History  *services.HistoryService
	Storage  config.StorageConfig

	maxUploadBytes int64
	log            *zap.Logger
}

func NewAPIHandler(
	accounts *services.AccountService,
	signing *services.SigningService,
	library *services.SignatureService,
	history *services.HistoryService,
	cfg config.Config,
	log *zap.Logger,
) *APIHandler {
	return &APIHandler{
		Accounts:       accounts,
		Signing:        signing,
		Library:        library,
		History:        history,
		Storage:        cfg.Storage,
		maxUploadBytes: cfg.MaxUploadBytes,
		log:            log,
	}
}

// RequireUser resolves the bearer token and rejects the request when no live
// session matches.
func (h *APIHandler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		user, err := h.Accounts.Resolve(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// OptionalUser attaches the authenticated user when a live token is presented
// and lets the request through either way.
func (h *APIHandler) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, err := bearerToken(r); err == nil {
			if user, err := h.Accounts.Resolve(r.Context(), token); err == nil {
				r = r.WithContext(withUser(r.Context(), user))
			}
		}
		next.ServeHTTP(w, r)
	})
}
