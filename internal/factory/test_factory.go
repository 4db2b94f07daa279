package factory

import (
	"time"

	"github.com/auracount/auracount/internal/dependencies/mocks"
	"github.com/auracount/auracount/internal/storage/local"
	"github.com/auracount/auracount/internal/storage/memory"
	"github.com/auracount/auracount/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// FlakyRemote wraps the in-memory remote store so tests can inject
	// failures and count remote calls
	FlakyRemote *testutil.FlakyStore
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Device-local state is written under dataDir, typically t.TempDir().
func NewTestApp(dataDir string) (*TestApp, error) {
	logger := testutil.NopLogger()

	flaky := testutil.NewFlakyStore(memory.New())
	localStore, err := local.New(dataDir, logger)
	if err != nil {
		return nil, err
	}

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(flaky, localStore, mockClock, mockRandom, logger)

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		FlakyRemote: flaky,
	}, nil
}
