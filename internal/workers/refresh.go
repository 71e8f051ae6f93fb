package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
)

// RefreshWorker periodically re-populates the note result sets so a
// long-running client picks up notes written by other sessions.
type RefreshWorker struct {
	loader   service.ResultSetLoader
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewRefreshWorker creates an idle worker. A zero or negative interval
// disables it: Start then does nothing.
func NewRefreshWorker(loader service.ResultSetLoader, interval time.Duration, logger *logger.Logger) *RefreshWorker {
	return &RefreshWorker{loader: loader, interval: interval, logger: logger}
}

// Start stops any previous run, then calls Load every interval until ctx is
// cancelled or Stop is called.
func (r *RefreshWorker) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Debug().Msg("note refresh is disabled")
		return
	}

	r.Stop()

	r.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		t := time.NewTicker(r.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := r.loader.Load(jobCtx); err != nil && jobCtx.Err() == nil {
					r.logger.Err(err).Str("func", "*RefreshWorker.Start").Msg("background note refresh failed")
				}
			}
		}
	}()
}

// Stop cancels the running job and waits for it to exit.
func (r *RefreshWorker) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}
