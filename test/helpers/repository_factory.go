package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/rareships-go/internal/adapters/persistence"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// TestRepositories holds real GORM repositories over one test database
type TestRepositories struct {
	DB       *gorm.DB
	Ships    *persistence.GormShipRepository
	Sites    *persistence.GormSiteRepository
	EventLog *persistence.GormEventLogRepository
}

// NewTestRepositories creates repositories over a fresh in-memory database.
// clock stamps event records; nil uses the real clock.
func NewTestRepositories(t *testing.T, clock shared.Clock) *TestRepositories {
	db := NewTestDB(t)
	return &TestRepositories{
		DB:       db,
		Ships:    persistence.NewGormShipRepository(db),
		Sites:    persistence.NewGormSiteRepository(db),
		EventLog: persistence.NewGormEventLogRepository(db, clock),
	}
}
