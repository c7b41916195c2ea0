package query

import (
	"context"
	"strings"

	"github.com/prover-network/proverstats/app/query/types"
	"github.com/prover-network/proverstats/pkg/db"
	"github.com/prover-network/proverstats/pkg/db/clickhouse"
	"github.com/prover-network/proverstats/pkg/logging"
	"github.com/prover-network/proverstats/pkg/pricefeed"
	"github.com/prover-network/proverstats/pkg/snapshot"
	"github.com/prover-network/proverstats/pkg/utils"
	"go.uber.org/zap"
)

// Initialize wires the query service: ClickHouse ledger store, snapshot
// locator over the export directories, and the cached price feed.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	chClient, err := clickhouse.New(ctx, logger, utils.Env("CLICKHOUSE_DB", "proverstats"))
	if err != nil {
		logger.Fatal("Unable to initialize ClickHouse client", zap.Error(err))
	}

	ledgerDb, err := db.NewLedgerDB(ctx, chClient)
	if err != nil {
		logger.Fatal("Unable to initialize ledger tables", zap.Error(err))
	}

	dirs := strings.Split(utils.Env("SNAPSHOT_DIRS", "./data/snapshots"), ",")
	locator := snapshot.NewDirLocator(logger, dirs...)

	// Redis-backed price cache is optional; single-replica deployments run
	// on the in-process cache.
	var cache pricefeed.Cache
	if utils.Env("REDIS_ENABLED", "false") == "true" {
		redisCache, err := pricefeed.NewRedisCache(ctx, logger)
		if err != nil {
			logger.Warn("Failed to initialize Redis cache - falling back to in-memory price cache",
				zap.Error(err))
			cache = pricefeed.NewMemoryCache()
		} else {
			cache = redisCache
		}
	} else {
		cache = pricefeed.NewMemoryCache()
	}

	app := &types.App{
		Ledger:    ledgerDb,
		Snapshots: locator,
		Price:     pricefeed.New(cache, logger),
		Logger:    logger,
	}

	// Every 5 minutes by default; seconds field included.
	cronSpec := utils.Env("PRICE_REFRESH_CRON", "0 */5 * * * *")
	if err := app.SetupPriceRefresh(ctx, cronSpec); err != nil {
		logger.Fatal("Unable to schedule price refresh", zap.Error(err))
	}

	return app
}
