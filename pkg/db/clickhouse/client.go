package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prover-network/proverstats/pkg/retry"
	"github.com/prover-network/proverstats/pkg/utils"
	"go.uber.org/zap"
)

// Client wraps a pooled ClickHouse connection.
type Client struct {
	Logger   *zap.Logger
	Db       driver.Conn
	Database string
}

// New initializes a ClickHouse client and makes sure the target database
// exists. Connection settings come from the environment:
//   - CLICKHOUSE_ADDR: DSN (default "clickhouse://localhost:9000?sslmode=disable")
//   - CLICKHOUSE_MAX_OPEN_CONNS / CLICKHOUSE_MAX_IDLE_CONNS: pool sizing
func New(ctx context.Context, logger *zap.Logger, dbName string) (Client, error) {
	connCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	client := Client{Logger: logger, Database: dbName}

	dsn := utils.Env("CLICKHOUSE_ADDR", "clickhouse://localhost:9000?sslmode=disable")
	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return Client{}, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	options.DialTimeout = 30 * time.Second
	options.MaxOpenConns = utils.EnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10)
	options.MaxIdleConns = utils.EnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5)
	options.ConnMaxLifetime = time.Hour
	options.Compression = &clickhouse.Compression{Method: clickhouse.CompressionLZ4}

	err = retry.WithBackoff(connCtx, retry.DefaultConfig(), logger, "clickhouse_connection", func() error {
		conn, err := clickhouse.Open(options)
		if err != nil {
			return fmt.Errorf("failed to open clickhouse connection: %w", err)
		}
		if err := conn.Ping(connCtx); err != nil {
			return fmt.Errorf("failed to ping clickhouse: %w", err)
		}
		client.Db = conn
		return nil
	})
	if err != nil {
		return Client{}, err
	}

	if err := client.Exec(connCtx, fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS "%s"`, dbName)); err != nil {
		return Client{}, fmt.Errorf("create database %s: %w", dbName, err)
	}

	logger.Info("ClickHouse connection pool configured",
		zap.String("database", dbName),
		zap.Int("max_open_conns", options.MaxOpenConns),
		zap.Int("max_idle_conns", options.MaxIdleConns),
	)
	return client, nil
}

func (c *Client) Exec(ctx context.Context, query string, args ...interface{}) error {
	return c.Db.Exec(ctx, query, args...)
}

func (c *Client) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return c.Db.Select(ctx, dest, query, args...)
}

func (c *Client) PrepareBatch(ctx context.Context, query string) (driver.Batch, error) {
	return c.Db.PrepareBatch(ctx, query)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx)
}

func (c *Client) Close() error {
	return c.Db.Close()
}
