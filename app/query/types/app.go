package types

import (
	"context"
	"net/http"
	"time"

	"github.com/prover-network/proverstats/pkg/db"
	"github.com/prover-network/proverstats/pkg/pricefeed"
	"github.com/prover-network/proverstats/pkg/snapshot"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type App struct {
	// Ledger is the staking ledger store.
	Ledger *db.LedgerDB
	// Snapshots locates and loads the daily leaderboard exports.
	Snapshots snapshot.Locator
	// Price serves the cached token price.
	Price *pricefeed.Client
	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
	// Cron runs the periodic price refresh.
	Cron *cron.Cron
}

// SetupPriceRefresh schedules the background price refresh so request paths
// normally hit the cache.
func (a *App) SetupPriceRefresh(ctx context.Context, cronSpec string) error {
	cronLogger := cron.VerbosePrintfLogger(zap.NewStdLog(a.Logger.Named("cron")))
	a.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cronLogger)))

	_, err := a.Cron.AddFunc(cronSpec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, 25*time.Second)
		defer cancel()
		if err := a.Price.Refresh(rctx); err != nil {
			a.Logger.Warn("price refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	a.Cron.Start()
	return nil
}

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.Cron != nil {
		a.Cron.Stop()
	}

	if err := a.Ledger.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	_ = a.Server.Shutdown(shutdownCtx)
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}
