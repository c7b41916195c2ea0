// Package db owns the two tables this service reads: the staking ledger and
// the prover metadata feed. The aggregation math itself lives in pkg/ledger;
// this layer only materializes consistent row sets.
package db

import (
	"context"
	"fmt"

	"github.com/prover-network/proverstats/pkg/db/clickhouse"
)

const (
	LedgerTableName   = "stake_ledger"
	MetadataTableName = "prover_metadata"
)

// LedgerDB is the ClickHouse-backed store for staking data.
type LedgerDB struct {
	clickhouse.Client
	Name string
}

// NewLedgerDB connects and ensures the schema exists.
func NewLedgerDB(ctx context.Context, client clickhouse.Client) (*LedgerDB, error) {
	db := &LedgerDB{Client: client, Name: client.Database}
	if err := db.InitializeDB(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// InitializeDB creates the ledger tables using raw SQL.
func (db *LedgerDB) InitializeDB(ctx context.Context) error {
	ledgerSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			staker String,
			prover String,
			amount String,
			block_time DateTime,
			tx_hash String
		) ENGINE = MergeTree
		ORDER BY (block_time, tx_hash)
	`, db.Name, LedgerTableName)
	if err := db.Exec(ctx, ledgerSQL); err != nil {
		return fmt.Errorf("create %s: %w", LedgerTableName, err)
	}

	metadataSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			address String,
			name String,
			logo_url String,
			apr String,
			gas String,
			success_rate String,
			updated_at DateTime
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY (address)
	`, db.Name, MetadataTableName)
	if err := db.Exec(ctx, metadataSQL); err != nil {
		return fmt.Errorf("create %s: %w", MetadataTableName, err)
	}

	return nil
}

// InsertRecords batch-inserts ledger rows. Used by fixtures and backfill
// tooling; the service itself never writes request-path data.
func (db *LedgerDB) InsertRecords(ctx context.Context, records []*LedgerRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (staker, prover, amount, block_time, tx_hash) VALUES`,
		db.Name, LedgerTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = batch.Close() }()

	for _, r := range records {
		if err := batch.Append(r.Staker, r.Prover, r.Amount, r.BlockTime, r.TxHash); err != nil {
			return err
		}
	}
	return batch.Send()
}

// UpsertMetadata batch-inserts metadata rows; ReplacingMergeTree keeps the
// newest row per address.
func (db *LedgerDB) UpsertMetadata(ctx context.Context, rows []*ProverMetadata) error {
	if len(rows) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (address, name, logo_url, apr, gas, success_rate, updated_at) VALUES`,
		db.Name, MetadataTableName)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = batch.Close() }()

	for _, m := range rows {
		if err := batch.Append(m.Address, m.Name, m.LogoURL, m.APR, m.Gas, m.SuccessRate, m.UpdatedAt); err != nil {
			return err
		}
	}
	return batch.Send()
}

// ListRecords returns the full ledger ordered by block time ascending. The
// whole result set is read before any aggregation starts, so one computation
// always observes a consistent ledger.
func (db *LedgerDB) ListRecords(ctx context.Context) ([]LedgerRecord, error) {
	query := fmt.Sprintf(`
		SELECT staker, prover, amount, block_time, tx_hash
		FROM "%s"."%s"
		ORDER BY block_time ASC, tx_hash ASC
	`, db.Name, LedgerTableName)

	var records []LedgerRecord
	if err := db.Select(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("query ledger records failed: %w", err)
	}
	return records, nil
}

// ListRecordsByProver returns one prover's ledger rows, ordered ascending.
func (db *LedgerDB) ListRecordsByProver(ctx context.Context, prover string) ([]LedgerRecord, error) {
	query := fmt.Sprintf(`
		SELECT staker, prover, amount, block_time, tx_hash
		FROM "%s"."%s"
		WHERE lower(prover) = lower(?)
		ORDER BY block_time ASC, tx_hash ASC
	`, db.Name, LedgerTableName)

	var records []LedgerRecord
	if err := db.Select(ctx, &records, query, prover); err != nil {
		return nil, fmt.Errorf("query prover ledger records failed: %w", err)
	}
	return records, nil
}

// ListMetadata returns the newest metadata row per address.
func (db *LedgerDB) ListMetadata(ctx context.Context) ([]ProverMetadata, error) {
	query := fmt.Sprintf(`
		SELECT address, name, logo_url, apr, gas, success_rate, updated_at
		FROM "%s"."%s" FINAL
		ORDER BY address ASC
	`, db.Name, MetadataTableName)

	var rows []ProverMetadata
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query prover metadata failed: %w", err)
	}
	return rows, nil
}
