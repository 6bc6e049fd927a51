package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	shipCommands "github.com/andrescamacho/rareships-go/internal/application/ship/commands"
)

// Sweeper settles the whole fleet on a fixed interval. Ships are settled
// lazily anyway; the sweep keeps stored state and the event log close to
// the current tick for readers that never settle.
type Sweeper struct {
	mediator mediator.Mediator
	interval time.Duration
}

func NewSweeper(m mediator.Mediator, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Sweeper{mediator: m, interval: interval}
}

// Run sweeps immediately and then once per interval until ctx is done.
// A failed sweep is logged and the next one runs on schedule.
func (s *Sweeper) Run(ctx context.Context) error {
	logger := logging.LoggerFromContext(ctx)
	logger.Log(logging.LevelInfo, "Sweeper started", map[string]interface{}{
		"interval": s.interval.String(),
	})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.SweepOnce(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Log(logging.LevelError, "Fleet sweep failed", map[string]interface{}{
				"error": err.Error(),
			})
		}

		select {
		case <-ctx.Done():
			logger.Log(logging.LevelInfo, "Sweeper stopped", nil)
			return nil
		case <-ticker.C:
		}
	}

	logger.Log(logging.LevelInfo, "Sweeper stopped", nil)
	return nil
}

// SweepOnce settles every ship once
func (s *Sweeper) SweepOnce(ctx context.Context) (*shipCommands.SettleFleetResponse, error) {
	response, err := s.mediator.Send(ctx, &shipCommands.SettleFleetCommand{})
	if err != nil {
		return nil, err
	}
	result, ok := response.(*shipCommands.SettleFleetResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected sweep response %T", response)
	}
	return result, nil
}

// ErrShutdownTimeout is returned when the sweeper does not stop in time
var ErrShutdownTimeout = errors.New("sweeper did not stop before the shutdown timeout")

// RunUntil runs the sweeper in the background and waits for stop to be
// closed. The sweep in flight is cancelled and given up to timeout to return.
func (s *Sweeper) RunUntil(ctx context.Context, stop <-chan struct{}, timeout time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-stop:
	}

	cancel()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}
