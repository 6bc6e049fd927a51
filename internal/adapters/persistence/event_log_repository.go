package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// GormEventLogRepository persists published events and reads them back.
// It is both an EventPublisher and an EventLogReader.
type GormEventLogRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

var (
	_ navigation.EventPublisher = (*GormEventLogRepository)(nil)
	_ common.EventLogReader     = (*GormEventLogRepository)(nil)
)

// NewGormEventLogRepository creates an event log. If clock is nil, uses RealClock.
func NewGormEventLogRepository(db *gorm.DB, clock shared.Clock) *GormEventLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormEventLogRepository{db: db, clock: clock}
}

// Publish appends events in order. Publishing is fire-and-forget: a failed
// write is logged and dropped, never surfaced to the command that emitted it.
func (r *GormEventLogRepository) Publish(ctx context.Context, events ...navigation.Event) {
	if len(events) == 0 {
		return
	}
	if err := r.Append(ctx, events...); err != nil {
		logging.LoggerFromContext(ctx).Log(logging.LevelError, "Failed to persist events", map[string]interface{}{
			"count": len(events),
			"error": err.Error(),
		})
	}
}

// Append writes events in one transaction, after every event already stored
func (r *GormEventLogRepository) Append(ctx context.Context, events ...navigation.Event) error {
	now := r.clock.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&ShipEventModel{}).Select("COALESCE(MAX(seq), 0)").Scan(&last).Error; err != nil {
			return fmt.Errorf("failed to read event sequence: %w", err)
		}

		models := make([]ShipEventModel, 0, len(events))
		for i, event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to encode %s event: %w", event.Type(), err)
			}
			var shipID *uint32
			if id, ok := navigation.ShipOf(event); ok {
				shipID = &id
			}
			models = append(models, ShipEventModel{
				ID:        uuid.New().String(),
				Seq:       last + int64(i) + 1,
				ShipID:    shipID,
				Type:      string(event.Type()),
				Tick:      int64(event.At()),
				Payload:   string(payload),
				CreatedAt: now,
			})
		}

		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to append events: %w", err)
		}
		return nil
	})
}

// List returns matching events oldest first. With a limit, the most recent
// limit events are returned, still oldest first.
func (r *GormEventLogRepository) List(ctx context.Context, filter common.EventFilter) ([]common.EventRecord, error) {
	query := r.db.WithContext(ctx).Model(&ShipEventModel{})
	if filter.ShipID != nil {
		query = query.Where("ship_id = ?", *filter.ShipID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var models []ShipEventModel
	if filter.Limit > 0 {
		query = query.Order("seq DESC").Limit(filter.Limit)
	} else {
		query = query.Order("seq ASC")
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	if filter.Limit > 0 {
		for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
			models[i], models[j] = models[j], models[i]
		}
	}

	records := make([]common.EventRecord, len(models))
	for i, m := range models {
		records[i] = common.EventRecord{
			ID:        m.ID,
			ShipID:    m.ShipID,
			Type:      m.Type,
			Tick:      uint64(m.Tick),
			Payload:   m.Payload,
			CreatedAt: m.CreatedAt,
		}
	}
	return records, nil
}
