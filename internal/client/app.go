package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/tui"
	"github.com/MKhiriev/go-note-keeper/internal/workers"
)

// App is one client process: the client services, the local storage they
// persist to, the refresh worker and the note browser.
type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	workers  *workers.Workers
	browser  *tui.TUI

	logger *logger.Logger
}

// NewApp wires the client. Online it talks to the note server through the
// HTTP adapter; offline notes and images stay in the local database. The
// session saved by a previous run is restored before NewApp returns.
func NewApp(ctx context.Context, cfg *config.ClientConfig, offline bool, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	var (
		identity adapter.IdentityProvider
		notes    store.NoteStore
		objects  store.ObjectStore
	)
	if offline {
		logger.Info().Msg("running in offline mode")
		identity = service.NewOfflineIdentityProvider()
		notes = storages.NoteStore
		objects = storages.ObjectStore
	} else {
		serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("create server adapter: %w", err)
		}
		identity, notes, objects = serverAdapter, serverAdapter, serverAdapter
	}

	generator := adapter.NewOpenAITextGenerator(cfg.AI, logger)
	services := service.NewClientServices(identity, notes, objects, storages.SessionRepository, generator, logger)

	if err = services.Auth.Restore(ctx); err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &App{
		services: services,
		storages: storages,
		workers:  workers.NewWorkers(workers.NewRefreshWorker(services.Notes, cfg.Workers.RefreshInterval, logger)),
		browser:  tui.New(services.Notes, logger),
		logger:   logger,
	}, nil
}

// Watch opens the note browser on set and keeps the result sets fresh
// until the browser exits.
func (a *App) Watch(ctx context.Context, set tui.Set) error {
	principal := a.services.Auth.Principal()
	if principal == nil {
		return service.ErrNotSignedIn
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	return a.browser.Browse(ctx, principal, set)
}

// Close stops the workers and releases the local database.
func (a *App) Close() error {
	a.workers.Stop()
	return a.storages.Close()
}
