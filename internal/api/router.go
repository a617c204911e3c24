package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hmori/dopabalance/internal/api/handler"
	"github.com/hmori/dopabalance/internal/api/middleware"
	logmw "github.com/hmori/dopabalance/internal/middleware"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/entry"
	"github.com/hmori/dopabalance/internal/services/identity"
	"github.com/hmori/dopabalance/internal/services/report"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	EntryController *entry.Controller
	ReportService   *report.Service
	Catalog         *model.Catalog
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.IdentityService, cfg.EntryController)
	entryHandler := handler.NewEntryHandler(cfg.EntryController)
	reportHandler := handler.NewReportHandler(cfg.ReportService)
	catalogHandler := handler.NewCatalogHandler(cfg.Catalog)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.IdentityService)
	loggingMiddleware := logmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public routes
	api.HandleFunc("/login", accountHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/rankings", reportHandler.Rankings).Methods(http.MethodGet)
	api.HandleFunc("/teams", reportHandler.TeamRollup).Methods(http.MethodGet)
	api.HandleFunc("/catalog", catalogHandler.Get).Methods(http.MethodGet)

	// Account deletion authenticates with the password in the body
	api.HandleFunc("/account", accountHandler.Delete).Methods(http.MethodDelete)

	// Entry submission accepts either a session token or inline credentials
	entries := api.PathPrefix("/entries").Subrouter()
	entries.Use(optionalAuthMiddleware)
	entries.HandleFunc("", entryHandler.Submit).Methods(http.MethodPost)

	// Session-only routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/logout", accountHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/profile", reportHandler.Profile).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
