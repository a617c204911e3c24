package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hmori/dopabalance/internal/api/middleware"
	"github.com/hmori/dopabalance/internal/api/request"
	"github.com/hmori/dopabalance/internal/api/response"
	"github.com/hmori/dopabalance/internal/services/entry"
	"github.com/hmori/dopabalance/internal/services/identity"
)

// AccountHandler handles login, session and account-deletion endpoints
type AccountHandler struct {
	identityService *identity.Service
	entryController *entry.Controller
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(identityService *identity.Service, entryController *entry.Controller) *AccountHandler {
	return &AccountHandler{
		identityService: identityService,
		entryController: entryController,
	}
}

// Login handles POST /api/v1/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.identityService.Login(r.Context(), req.RealName, req.Password, req.Nickname, req.Team)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResponseFromSession(session))
}

// GetMe handles GET /api/v1/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.LoginResponseFromSession(session))
}

// Logout handles POST /api/v1/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.identityService.InvalidateSession(session.Token)
	response.NoContent(w)
}

// Delete handles DELETE /api/v1/account
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.entryController.EraseAccount(r.Context(), req.RealName, req.Password, req.Confirmed); err != nil {
		WriteError(w, err)
		return
	}

	// No cached identity state survives the purge
	h.identityService.InvalidateIdentity(req.RealName)

	response.NoContent(w)
}
