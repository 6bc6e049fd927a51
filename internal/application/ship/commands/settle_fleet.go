package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/rareships-go/internal/adapters/metrics"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
)

// SettleFleetCommand settles every known ship once, in spawn order
type SettleFleetCommand struct{}

// ShipFailure records a ship the sweep could not settle
type ShipFailure struct {
	ShipID uint32
	Err    error
}

type SettleFleetResponse struct {
	Settled  int
	Changed  int
	Failures []ShipFailure
}

// SettleFleetHandler handles SettleFleetCommand.
//
// Each ship goes through the mediator as its own SettleShipCommand so the
// per-ship locking, logging and metrics apply unchanged. One ship failing
// does not stop the sweep.
type SettleFleetHandler struct {
	shipRepo navigation.ShipRepository
	mediator mediator.Mediator
	limiter  *rate.Limiter
}

// NewSettleFleetHandler creates the sweep handler. A nil limiter means unthrottled.
func NewSettleFleetHandler(shipRepo navigation.ShipRepository, m mediator.Mediator, limiter *rate.Limiter) *SettleFleetHandler {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &SettleFleetHandler{shipRepo: shipRepo, mediator: m, limiter: limiter}
}

func (h *SettleFleetHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*SettleFleetCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *SettleFleetCommand")
	}

	logger := logging.LoggerFromContext(ctx)
	started := time.Now()

	ids, err := h.shipRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}

	response := &SettleFleetResponse{}
	for _, id := range ids {
		if err := h.limiter.Wait(ctx); err != nil {
			// Context cancelled mid-sweep; report what was done so far
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Log(logging.LevelWarn, "Fleet sweep interrupted", map[string]interface{}{
					"settled": response.Settled,
					"pending": len(ids) - response.Settled - len(response.Failures),
				})
				break
			}
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := h.mediator.Send(ctx, &SettleShipCommand{ShipID: id})
		if err != nil {
			response.Failures = append(response.Failures, ShipFailure{ShipID: id, Err: err})
			logger.Log(logging.LevelError, "Skipping ship in fleet sweep", map[string]interface{}{
				"ship_id": id,
				"error":   err.Error(),
			})
			continue
		}

		response.Settled++
		if settled, ok := resp.(*SettleShipResponse); ok && settled.Outcome.Changed() {
			response.Changed++
		}
	}

	elapsed := time.Since(started)
	metrics.RecordFleetSweep(response.Settled, len(response.Failures), elapsed.Seconds())

	logger.Log(logging.LevelInfo, "Fleet sweep complete", map[string]interface{}{
		"ships":       len(ids),
		"settled":     response.Settled,
		"changed":     response.Changed,
		"failed":      len(response.Failures),
		"duration_ms": elapsed.Milliseconds(),
	})

	return response, nil
}
