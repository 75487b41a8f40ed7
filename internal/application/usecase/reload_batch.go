package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/logging"
)

// ProgressFunc observes batch progress as a percentage of members
// processed so far. Called between chunks, never concurrently.
type ProgressFunc func(percent int)

// BatchReloader reloads a tab set with bounded concurrency: consecutive
// chunks run strictly in order, members inside a chunk run concurrently
// with a stagger, and individual failures never abort siblings or later
// chunks.
type BatchReloader struct {
	host  port.Host
	clock port.Clock
}

// NewBatchReloader creates a reloader against the given host.
func NewBatchReloader(host port.Host, clock port.Clock) *BatchReloader {
	return &BatchReloader{host: host, clock: clock}
}

// Run reloads the tabs per cfg and returns per-member accounting. Only a
// cancelled context aborts the run early; the partial result is still
// returned alongside the context error.
func (r *BatchReloader) Run(ctx context.Context, tabs []entity.Tab, cfg entity.ReloadBatchConfig, progress ProgressFunc) (entity.ReloadBatchResult, error) {
	log := logging.FromContext(ctx)
	start := r.clock.Now()

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}

	// Only descriptors with a real id participate.
	valid := make([]entity.Tab, 0, len(tabs))
	for _, tab := range tabs {
		if tab.ID.Valid() {
			valid = append(valid, tab)
		}
	}

	result := entity.ReloadBatchResult{Total: len(valid)}
	if len(valid) == 0 {
		result.Duration = r.clock.Now().Sub(start)
		return result, nil
	}

	log.Info().
		Int("total", len(valid)).
		Int("batch_size", cfg.BatchSize).
		Msg("starting batched reload")

	var processed, failed atomic.Int64
	done := 0

	for offset := 0; offset < len(valid); offset += cfg.BatchSize {
		end := offset + cfg.BatchSize
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[offset:end]

		g := new(errgroup.Group)
		for i, tab := range chunk {
			tab := tab
			stagger := staggerDelay(cfg.PerTabDelay, i, len(chunk))
			g.Go(func() error {
				if err := r.clock.Sleep(ctx, stagger); err != nil {
					return err
				}
				if err := r.host.ReloadTab(ctx, tab.ID); err != nil {
					// Partial failure is the steady state: count and move on.
					failed.Add(1)
					log.Warn().Err(err).Int("tab_id", int(tab.ID)).Msg("tab reload failed")
					return nil
				}
				processed.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			// Only context cancellation reaches here.
			result.Processed = int(processed.Load())
			result.Errors = int(failed.Load())
			result.Duration = r.clock.Now().Sub(start)
			return result, err
		}

		done += len(chunk)
		if done < len(valid) {
			percent := done * 100 / len(valid)
			log.Debug().Int("percent", percent).Msg("batch chunk settled")
			if progress != nil {
				progress(percent)
			}
			if err := r.clock.Sleep(ctx, cfg.InterBatchDelay); err != nil {
				result.Processed = int(processed.Load())
				result.Errors = int(failed.Load())
				result.Duration = r.clock.Now().Sub(start)
				return result, err
			}
		}
	}

	result.Processed = int(processed.Load())
	result.Errors = int(failed.Load())
	result.Duration = r.clock.Now().Sub(start)

	log.Info().
		Int("processed", result.Processed).
		Int("errors", result.Errors).
		Dur("duration", result.Duration).
		Msg("batched reload finished")

	return result, nil
}

// staggerDelay spreads chunk members across perTabDelay so reloads inside
// a chunk do not land on the host simultaneously.
func staggerDelay(perTabDelay time.Duration, index, chunkSize int) time.Duration {
	if chunkSize <= 0 || perTabDelay <= 0 {
		return 0
	}
	return time.Duration(float64(perTabDelay) * float64(index) / float64(chunkSize))
}
