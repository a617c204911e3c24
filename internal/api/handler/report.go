package handler

import (
	"net/http"

	"github.com/hmori/dopabalance/internal/api/middleware"
	"github.com/hmori/dopabalance/internal/api/response"
	"github.com/hmori/dopabalance/internal/services/report"
)

// ReportHandler handles leaderboard and profile endpoints
type ReportHandler struct {
	reportService *report.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Rankings handles GET /api/v1/rankings
func (h *ReportHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.Rankings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RankingsResponseFromRows(rows))
}

// TeamRollup handles GET /api/v1/teams
func (h *ReportHandler) TeamRollup(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.TeamRollup(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamRollupResponseFromRows(rows))
}

// Profile handles GET /api/v1/profile
//
// Profiles are keyed by real name, so they are only served to the
// authenticated identity itself.
func (h *ReportHandler) Profile(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	profile, err := h.reportService.Profile(r.Context(), session.Identity.RealName)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ProfileResponseFromReport(profile, session.Identity))
}
