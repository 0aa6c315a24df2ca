package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/vuegen/pkg/types"
)

// MockRootsProvider is a testify mock of types.RootsProvider
type MockRootsProvider struct {
	mock.Mock
}

var _ types.RootsProvider = (*MockRootsProvider)(nil)

func (m *MockRootsProvider) EngineCorePath() string {
	return m.Called().String(0)
}

func (m *MockRootsProvider) EnginePluginsPath() string {
	return m.Called().String(0)
}

func (m *MockRootsProvider) UserPluginsPath() string {
	return m.Called().String(0)
}

func (m *MockRootsProvider) WorkspaceRoot() string {
	return m.Called().String(0)
}

func (m *MockRootsProvider) InstalledPlugins() []string {
	args := m.Called()
	if ids, ok := args.Get(0).([]string); ok {
		return ids
	}
	return nil
}

// StaticRoots is a RootsProvider with fixed values
type StaticRoots struct {
	Engine      string
	Plugins     string
	UserPlugins string
	Workspace   string
	Installed   []string
}

var _ types.RootsProvider = StaticRoots{}

func (s StaticRoots) EngineCorePath() string     { return s.Engine }
func (s StaticRoots) EnginePluginsPath() string  { return s.Plugins }
func (s StaticRoots) UserPluginsPath() string    { return s.UserPlugins }
func (s StaticRoots) WorkspaceRoot() string      { return s.Workspace }
func (s StaticRoots) InstalledPlugins() []string { return s.Installed }

// MockTrigger is a function-backed types.Trigger
type MockTrigger struct {
	NameFunc  func() string
	MatchFunc func(path string) bool
}

// Name returns the mock's name.
func (m *MockTrigger) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock-trigger"
}

// Description returns the mock's description.
func (m *MockTrigger) Description() string {
	return "A mock trigger for testing."
}

// Match calls MatchFunc, or matches nothing.
func (m *MockTrigger) Match(path string) bool {
	if m.MatchFunc != nil {
		return m.MatchFunc(path)
	}
	return false
}
