// Package bootstrap wires configuration, storage, services, and the HTTP
// server into a running application.
package bootstrap

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tradebook/internal/adapters/config"
	pgclient "tradebook/internal/adapters/postgres"
	"tradebook/internal/api/health"
	httpapi "tradebook/internal/api/http"
	"tradebook/internal/domain/account"
	"tradebook/internal/domain/journal"
	"tradebook/internal/domain/playbook"
	"tradebook/internal/domain/trade"
	"tradebook/internal/metrics"
	pgrepo "tradebook/internal/repository/postgres"
	analyticssvc "tradebook/internal/services/analytics"
	"tradebook/pkg/errors"
	"tradebook/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// Container holds all application dependencies and their lifecycle
// Components are organized in initialization order
type Container struct {
	Config       *config.Config
	Log          *logger.Logger
	ErrorTracker errors.Tracker

	PG *pgclient.Client

	Repos    *Repositories
	Services *Services

	HTTP *httpapi.Server
}

// Repositories groups all domain repositories
type Repositories struct {
	Trade    trade.Repository
	Account  account.Repository
	Playbook playbook.Repository
	Journal  journal.Repository
}

// Services groups all domain and application services
type Services struct {
	Trade     *trade.Service
	Account   *account.Service
	Playbook  *playbook.Service
	Journal   *journal.Service
	Analytics *analyticssvc.Service
}

// New builds the full dependency graph
func New(cfg *config.Config, log *logger.Logger, tracker errors.Tracker) (*Container, error) {
	pg, err := pgclient.NewClient(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	repos := &Repositories{
		Trade:    pgrepo.NewTradeRepository(pg.DB()),
		Account:  pgrepo.NewAccountRepository(pg.DB()),
		Playbook: pgrepo.NewPlaybookRepository(pg.DB()),
		Journal:  pgrepo.NewJournalRepository(pg.DB()),
	}

	services := &Services{
		Trade:     trade.NewService(repos.Trade),
		Account:   account.NewService(repos.Account),
		Playbook:  playbook.NewService(repos.Playbook),
		Journal:   journal.NewService(repos.Journal),
		Analytics: analyticssvc.NewService(repos.Trade, repos.Account, repos.Playbook),
	}

	metrics.Init()
	prometheus.MustRegister(metrics.NewCustomCollector(log, pg.DB()))

	healthHandler := health.New(log, pg.DB(), cfg.App.Name, cfg.App.Version)
	httpServer := httpapi.NewServer(cfg.HTTP, services.Analytics, healthHandler, log)

	return &Container{
		Config:       cfg,
		Log:          log,
		ErrorTracker: tracker,
		PG:           pg,
		Repos:        repos,
		Services:     services,
		HTTP:         httpServer,
	}, nil
}

// Run serves until the context is cancelled, then shuts everything down
func (c *Container) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.HTTP.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return c.Shutdown()
}

// Shutdown stops the server and closes connections
func (c *Container) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := c.HTTP.Shutdown(ctx); err != nil {
		c.Log.Warnw("http server shutdown failed", "error", err)
	}

	if c.ErrorTracker != nil {
		if err := c.ErrorTracker.Flush(ctx); err != nil {
			c.Log.Warnw("failed to flush error tracker", "error", err)
		}
	}

	if err := c.PG.Close(); err != nil {
		return errors.Wrap(err, "failed to close postgres")
	}

	c.Log.Info("Shutdown complete")
	return nil
}
