package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type dialect struct {
	table  string
	create string
	upsert string
}

var (
	sqliteDialect = dialect{
		table: "state",
		create: `CREATE TABLE IF NOT EXISTS state (
			bucket TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		)`,
		upsert: `INSERT INTO state(bucket, payload) VALUES(?, ?)
			ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
	}

	postgresDialect = dialect{
		table: "ledger_state",
		create: `CREATE TABLE IF NOT EXISTS ledger_state (
			bucket TEXT PRIMARY KEY,
			payload JSONB NOT NULL
		)`,
		upsert: `INSERT INTO ledger_state(bucket, payload) VALUES($1, $2)
			ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
	}
)

// SQL stores one row per record list in a bucket table. Save upserts all
// rows in one transaction.
type SQL struct {
	db *sql.DB
	d  dialect
}

// NewSQLite returns a store on a database opened with the sqlite driver.
func NewSQLite(db *sql.DB) *SQL {
	return &SQL{db: db, d: sqliteDialect}
}

// NewPostgres returns a store on a database opened with the pgx driver.
func NewPostgres(db *sql.DB) *SQL {
	return &SQL{db: db, d: postgresDialect}
}

// Migrate creates the bucket table if it does not exist.
func (s *SQL) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.d.create); err != nil {
		return fmt.Errorf("creating %s table: %w", s.d.table, err)
	}

	return nil
}

func (s *SQL) Load(ctx context.Context) (*ledger.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT bucket, payload FROM "+s.d.table)
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", s.d.table, err)
	}
	defer func() { _ = rows.Close() }()

	var snap ledger.Snapshot

	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)

		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.d.table, err)
		}

		dst, ok := target(&snap, bucket)
		if !ok || len(payload) == 0 {
			continue
		}

		if err := decode(payload, dst); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", bucket, err)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", s.d.table, err)
	}

	snap.Normalize()

	return &snap, nil
}

func (s *SQL) Save(ctx context.Context, snap *ledger.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, bucket := range buckets {
		data, err := encodeBucket(snap, bucket)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, s.d.upsert, bucket, data); err != nil {
			return fmt.Errorf("upserting %s: %w", bucket, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	return nil
}
