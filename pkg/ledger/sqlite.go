package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence.
// This backend provides a durable append-only ledger suitable for
// single-instance deployments where spend must survive restarts.
//
// SQLiteStore uses a write-ahead log (WAL) for better concurrent
// performance. The entries table is insert-only; nothing in this
// package updates or deletes rows.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex

	// prepared statements, compiled once at startup
	appendStmt       *sql.Stmt
	sumStmt          *sql.Stmt
	sumByServiceStmt *sql.Stmt
}

// SQLiteConfig configures the SQLite ledger store.
type SQLiteConfig struct {
	// Path is the path to the SQLite database file.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore creates a new SQLite ledger store.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	// Open database with WAL mode and busy timeout
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:     db,
		dbPath: cfg.Path,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cost_entries (
		id TEXT PRIMARY KEY,
		service TEXT NOT NULL,
		cost_units INTEGER NOT NULL,
		recorded_at INTEGER NOT NULL,
		metadata TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_recorded_at ON cost_entries(recorded_at);
	CREATE INDEX IF NOT EXISTS idx_service ON cost_entries(service);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.appendStmt, err = s.db.Prepare(`
		INSERT INTO cost_entries (id, service, cost_units, recorded_at, metadata)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare append statement: %w", err)
	}

	s.sumStmt, err = s.db.Prepare(`
		SELECT COALESCE(SUM(cost_units), 0)
		FROM cost_entries
		WHERE recorded_at >= ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sum statement: %w", err)
	}

	s.sumByServiceStmt, err = s.db.Prepare(`
		SELECT service, COALESCE(SUM(cost_units), 0)
		FROM cost_entries
		WHERE recorded_at >= ?
		GROUP BY service
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sum-by-service statement: %w", err)
	}

	return nil
}

// Append inserts an entry into the ledger.
func (s *SQLiteStore) Append(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if entry.Service == "" {
		return fmt.Errorf("service cannot be empty")
	}

	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}
	recordedAt := entry.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	var metadataJSON []byte
	if len(entry.Metadata) > 0 {
		var err error
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.appendStmt.ExecContext(ctx,
		id,
		entry.Service,
		entry.CostUnits,
		recordedAt.UnixMilli(),
		string(metadataJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}

	entry.ID = id
	entry.RecordedAt = recordedAt
	return nil
}

// SumSince returns the total cost units recorded at or after the given time.
func (s *SQLiteStore) SumSince(ctx context.Context, since time.Time) (int64, error) {
	var sum int64
	err := s.sumStmt.QueryRowContext(ctx, since.UnixMilli()).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum entries: %w", err)
	}
	return sum, nil
}

// SumByServiceSince returns per-service totals recorded at or after the given time.
func (s *SQLiteStore) SumByServiceSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := s.sumByServiceStmt.QueryContext(ctx, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries by service: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]int64)
	for rows.Next() {
		var service string
		var sum int64
		if err := rows.Scan(&service, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		sums[service] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return sums, nil
}

// Close closes the prepared statements and the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.appendStmt, s.sumStmt, s.sumByServiceStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	return s.db.Close()
}
