package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// MockSiteRepository is an in-memory implementation of SiteRepository for testing
type MockSiteRepository struct {
	mu    sync.Mutex
	sites map[uint32]*planet.ResourceSite
}

var _ planet.SiteRepository = (*MockSiteRepository)(nil)

func NewMockSiteRepository() *MockSiteRepository {
	return &MockSiteRepository{sites: make(map[uint32]*planet.ResourceSite)}
}

func (m *MockSiteRepository) FindByID(ctx context.Context, id uint32) (*planet.ResourceSite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	site, exists := m.sites[id]
	if !exists {
		return nil, shared.NewSiteNotFoundError(id)
	}
	return site, nil
}

func (m *MockSiteRepository) Add(ctx context.Context, site *planet.ResourceSite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sites[site.ID()]; exists {
		return shared.NewSiteAlreadyExistsError(site.ID())
	}
	m.sites[site.ID()] = site
	return nil
}

// Count returns the number of stored sites
func (m *MockSiteRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sites)
}
