package factory

import (
	"time"

	"github.com/gobrains/brains/internal/dependencies/mocks"
	"github.com/gobrains/brains/internal/session"
	sessionmemory "github.com/gobrains/brains/internal/session/memory"
	"github.com/gobrains/brains/internal/storage/memory"
	"github.com/gobrains/brains/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	sessionStore := sessionmemory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, sessionStore, mockClock, mockRandom, session.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
