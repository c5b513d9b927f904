package actions

// MockResolver is a mock implementation of the Resolver interface for testing.
type MockResolver struct {
	ResolveFunc func(repo, tag string, checkUpdates bool) (Resolution, bool)
}

// Ensure MockResolver implements Resolver
var _ Resolver = (*MockResolver)(nil)

func (m *MockResolver) Resolve(repo, tag string, checkUpdates bool) (Resolution, bool) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(repo, tag, checkUpdates)
	}
	return Resolution{}, false
}
