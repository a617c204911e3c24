package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hmori/dopabalance/internal/api/middleware"
	"github.com/hmori/dopabalance/internal/api/request"
	"github.com/hmori/dopabalance/internal/api/response"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/entry"
)

// EntryHandler handles entry submission
type EntryHandler struct {
	entryController *entry.Controller
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryController *entry.Controller) *EntryHandler {
	return &EntryHandler{entryController: entryController}
}

// Submit handles POST /api/v1/entries
//
// With a session token the identity comes from the session; otherwise the
// body must carry the full credentials.
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Date == "" {
		WriteError(w, NewInvalidRequestError("date is required"))
		return
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		WriteError(w, NewInvalidRequestError("date must be YYYY-MM-DD"))
		return
	}

	selections := model.Selections{
		Assets:      req.Selections.Assets,
		Bonuses:     req.Selections.Bonuses,
		Liabilities: req.Selections.Liabilities,
	}

	var result *entry.SubmitResult
	if session := middleware.GetSession(r.Context()); session != nil {
		result, err = h.entryController.SubmitAuthenticated(r.Context(), entry.SessionClaim{
			Identity:         session.Identity,
			DigestFromLedger: session.DigestFromLedger,
		}, date, selections, req.Confess)
	} else {
		result, err = h.entryController.Submit(r.Context(), entry.SubmitRequest{
			RealName:   req.RealName,
			Password:   req.Password,
			Nickname:   req.Nickname,
			Team:       req.Team,
			Date:       date,
			Selections: selections,
			Confess:    req.Confess,
		})
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitEntryResponseFromResult(result))
}
