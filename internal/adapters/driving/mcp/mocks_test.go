package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/idgen"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/seed"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/services"
)

// mockFragmentService is a mock implementation of driving.FragmentService.
type mockFragmentService struct {
	fragments []domain.Fragment
	tags      []string
	err       error
}

func (m *mockFragmentService) Init(_ context.Context, _ []domain.Fragment) error {
	return m.err
}

func (m *mockFragmentService) Create(_ context.Context, _ domain.Draft) (*domain.Fragment, error) {
	return nil, m.err
}

func (m *mockFragmentService) Update(_ context.Context, _ domain.Fragment) (*domain.Fragment, error) {
	return nil, m.err
}

func (m *mockFragmentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockFragmentService) Get(_ context.Context, _ string) (*domain.Fragment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.fragments) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.fragments[0], nil
}

func (m *mockFragmentService) List(_ context.Context) ([]domain.Fragment, error) {
	return m.fragments, m.err
}

func (m *mockFragmentService) Tags(_ context.Context) ([]string, error) {
	return m.tags, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.Fragment
	err     error
	state   domain.FilterState
}

func (m *mockSearchService) Filter(fragments []domain.Fragment, _ string, _ []string) []domain.Fragment {
	return fragments
}

func (m *mockSearchService) Search(_ context.Context, state domain.FilterState) ([]domain.Fragment, error) {
	m.state = state
	return m.results, m.err
}

// newSeededServer builds a server over a real session seeded with the
// samples.
func newSeededServer(t *testing.T) (*Server, *notify.Bus) {
	t.Helper()

	bus := notify.NewBus()
	fragments := services.NewFragmentService(memory.NewFragmentStore(), idgen.NewSequence(), bus)
	require.NoError(t, fragments.Init(context.Background(), seed.Samples()))

	server, err := NewServer(&Ports{
		Fragments: fragments,
		Search:    services.NewSearchService(fragments),
		Changes:   bus,
	})
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return server, bus
}
