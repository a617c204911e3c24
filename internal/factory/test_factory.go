package factory

import (
	"time"

	"github.com/hmori/dopabalance/internal/dependencies/mocks"
	"github.com/hmori/dopabalance/internal/ledger/memory"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/identity"
	"github.com/hmori/dopabalance/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MemoryStore is the concrete in-memory store for direct inspection
	MemoryStore *memory.Store

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		model.DefaultCatalog(),
		identity.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:         app,
		MemoryStore: store,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
	}
}
