package factory

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hmori/dopabalance/internal/config"
	"github.com/hmori/dopabalance/internal/dependencies/clock"
	"github.com/hmori/dopabalance/internal/dependencies/random"
	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/ledger/memory"
	postgresstore "github.com/hmori/dopabalance/internal/ledger/postgres"
	redisstore "github.com/hmori/dopabalance/internal/ledger/redis"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/entry"
	"github.com/hmori/dopabalance/internal/services/identity"
	"github.com/hmori/dopabalance/internal/services/report"
	"github.com/hmori/dopabalance/internal/services/scoring"
)

// App contains all wired application components
type App struct {
	// Storage
	Store ledger.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Configuration
	Catalog *model.Catalog

	// Services
	IdentityService *identity.Service
	ScoringService  *scoring.Service
	EntryController *entry.Controller
	ReportService   *report.Service
}

// New creates a new application with all dependencies wired from config
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store ledger.Store
	switch cfg.Storage.Type {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		redisStore, err := redisstore.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		store = redisStore
	case config.StorageTypePostgres:
		pgStore, err := postgresstore.Open(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		store = pgStore
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.Storage.Type)
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = model.DefaultCatalog()
	}

	identityCfg := identity.Config{
		SessionDuration: time.Duration(cfg.Session.DurationHours) * time.Hour,
	}

	return newWithDependencies(store, clock.New(), random.New(), catalog, identityCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store ledger.Store, clk clock.Clock, rnd random.Random, catalog *model.Catalog, identityCfg identity.Config, logger *slog.Logger) *App {
	scoringService := scoring.New(catalog)
	identityService := identity.New(store, clk, identityCfg, logger)
	entryController := entry.NewController(store, scoringService, clk, rnd, logger)
	reportService := report.New(store, logger)

	return &App{
		Store:           store,
		Clock:           clk,
		Random:          rnd,
		Catalog:         catalog,
		IdentityService: identityService,
		ScoringService:  scoringService,
		EntryController: entryController,
		ReportService:   reportService,
	}
}
