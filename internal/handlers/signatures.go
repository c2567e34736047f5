package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"go-signpdf/internal/store"
	"go-signpdf/types"
)

type SaveSignatureRequest struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

type SaveSignatureResponse struct {
	Success     bool   `json:"success"`
	SignatureID int64  `json:"signature_id"`
	Message     string `json:"message"`
}

type SignatureListResponse struct {
	Signatures []types.SavedSignature `json:"signatures"`
}

// ListSignatures godoc
// @Summary      List saved signatures
// @Description  Returns the authenticated user's signature library
// @Tags         signatures
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SignatureListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/signatures [get]
func (h *APIHandler) ListSignatures(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sigs, err := h.Library.List(r.Context(), user.ID)
	if err != nil {
		h.log.Error("list signatures failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list signatures")
		return
	}
	writeJSON(w, http.StatusOK, SignatureListResponse{Signatures: sigs})
}

// SaveSignature godoc
// @Summary      Save a signature
// @Description  Adds a signature image to the user's library
// @Tags         signatures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      SaveSignatureRequest  true  "Signature to save"
// @Success      200  {object}  SaveSignatureResponse
// @Failure      400  {object}  ErrorResponse  "Missing fields"
// @Failure      401  {object}  ErrorResponse
// @Router       /api/signatures/save [post]
func (h *APIHandler) SaveSignature(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SaveSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Signature == "" {
		writeError(w, http.StatusBadRequest, "name and signature are required")
		return
	}

	sig, err := h.Library.Save(r.Context(), user.ID, req.Name, req.Signature)
	if err != nil {
		h.log.Error("save signature failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save signature")
		return
	}

	writeJSON(w, http.StatusOK, SaveSignatureResponse{
		Success:     true,
		SignatureID: sig.ID,
		Message:     "signature saved",
	})
}

// DeleteSignature godoc
// @Summary      Delete a saved signature
// @Description  Removes a signature from the user's library
// @Tags         signatures
// @Produce      json
// @Security     BearerAuth
// @Param        signatureID  path  int  true  "Signature ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse  "Not found or not owned"
// @Router       /api/signatures/{signatureID} [delete]
func (h *APIHandler) DeleteSignature(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "signatureID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid signature id")
		return
	}

	if err := h.Library.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "signature not found")
			return
		}
		h.log.Error("delete signature failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete signature")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "signature deleted"})
}
