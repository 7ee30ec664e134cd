package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/tiagofoil/valuerank/internal/domain"
)

// Store wraps the SQL database connection for the model catalog.
type Store struct {
	db *sql.DB
}

// ModelRow is the loosely-shaped row returned by the read queries.
// It is the only place raw column names and nullability appear; the
// repository adapter maps it to a domain.Model exactly once.
type ModelRow struct {
	ID              string
	Name            string
	Provider        string
	ContextLength   int64
	PromptPrice     sql.NullFloat64
	CompletionPrice sql.NullFloat64
	SWEBench        sql.NullFloat64
	Intelligence    sql.NullFloat64
	ArenaELO        sql.NullFloat64
	Agentic         sql.NullFloat64
	BFCL            sql.NullFloat64
	Aider           sql.NullFloat64
	FreeTierType    sql.NullString
	FreeTierInfo    sql.NullString
	Source          sql.NullString
}

// Open opens a SQLite database connection.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// WAL mode for concurrent readers during scraper/admin writes
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Avoid "database is locked" errors under concurrent load
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the catalog schema: a master model table, a
// benchmarks table keyed by model id, and a precomputed aggregate view
// joining the two for the primary read tier.
func (s *Store) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		provider TEXT NOT NULL,
		context_length INTEGER NOT NULL DEFAULT 0,
		free_tier_type TEXT,
		free_tier_info TEXT,
		source TEXT NOT NULL DEFAULT 'seed',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS benchmarks (
		model_id TEXT PRIMARY KEY,
		prompt_price REAL NOT NULL DEFAULT 0,
		completion_price REAL NOT NULL DEFAULT 0,
		swe_bench REAL,
		intelligence REAL,
		arena_elo REAL,
		agentic REAL,
		bfcl REAL,
		aider REAL,
		data_source TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_models_active ON models(is_active);

	CREATE VIEW IF NOT EXISTS model_stats AS
		SELECT m.id, m.name, m.provider, m.context_length,
		       b.prompt_price, b.completion_price,
		       b.swe_bench, b.intelligence, b.arena_elo, b.agentic, b.bfcl, b.aider,
		       m.free_tier_type, m.free_tier_info, m.source
		FROM models m
		JOIN benchmarks b ON b.model_id = m.id
		WHERE m.is_active = 1;
	`

	_, err := s.db.Exec(schema)
	return err
}

const rowColumns = `id, name, provider, context_length,
	prompt_price, completion_price,
	swe_bench, intelligence, arena_elo, agentic, bfcl, aider,
	free_tier_type, free_tier_info, source`

// ActiveModelStats reads the precomputed aggregate view (primary tier).
func (s *Store) ActiveModelStats(ctx context.Context) ([]ModelRow, error) {
	query := fmt.Sprintf("SELECT %s FROM model_stats ORDER BY id", rowColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query model stats view: %w", err)
	}
	defer rows.Close()

	return scanModelRows(rows)
}

// JoinedModels computes the same shape on the fly from the base tables
// (secondary tier, used when the view is broken or empty).
func (s *Store) JoinedModels(ctx context.Context) ([]ModelRow, error) {
	query := `
		SELECT m.id, m.name, m.provider, m.context_length,
		       b.prompt_price, b.completion_price,
		       b.swe_bench, b.intelligence, b.arena_elo, b.agentic, b.bfcl, b.aider,
		       m.free_tier_type, m.free_tier_info, m.source
		FROM models m
		LEFT JOIN benchmarks b ON b.model_id = m.id
		WHERE m.is_active = 1
		ORDER BY m.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to join models and benchmarks: %w", err)
	}
	defer rows.Close()

	return scanModelRows(rows)
}

func scanModelRows(rows *sql.Rows) ([]ModelRow, error) {
	var out []ModelRow
	for rows.Next() {
		var r ModelRow
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Provider, &r.ContextLength,
			&r.PromptPrice, &r.CompletionPrice,
			&r.SWEBench, &r.Intelligence, &r.ArenaELO, &r.Agentic, &r.BFCL, &r.Aider,
			&r.FreeTierType, &r.FreeTierInfo, &r.Source,
		); err != nil {
			return nil, fmt.Errorf("failed to scan model row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate model rows: %w", err)
	}
	return out, nil
}

// UpsertModel creates or replaces a model record and its pricing,
// keyed by model id. Reactivates a previously soft-deleted record.
func (s *Store) UpsertModel(ctx context.Context, m domain.Model) error {
	if m.ID == "" {
		return errors.New("model id cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var freeTierType, freeTierInfo any
	if m.FreeTier != nil {
		freeTierType = m.FreeTier.Type
		freeTierInfo = encodeFreeTierInfo(m.FreeTier)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO models (id, name, provider, context_length, free_tier_type, free_tier_info, source, is_active, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   provider = excluded.provider,
		   context_length = excluded.context_length,
		   free_tier_type = excluded.free_tier_type,
		   free_tier_info = excluded.free_tier_info,
		   source = excluded.source,
		   is_active = 1,
		   updated_at = CURRENT_TIMESTAMP`,
		m.ID, m.Name, m.Provider, m.ContextLength, freeTierType, freeTierInfo, m.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert model %s: %w", m.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO benchmarks (model_id, prompt_price, completion_price, swe_bench, intelligence, arena_elo, agentic, bfcl, aider, data_source, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(model_id) DO UPDATE SET
		   prompt_price = excluded.prompt_price,
		   completion_price = excluded.completion_price,
		   swe_bench = COALESCE(excluded.swe_bench, benchmarks.swe_bench),
		   intelligence = COALESCE(excluded.intelligence, benchmarks.intelligence),
		   arena_elo = COALESCE(excluded.arena_elo, benchmarks.arena_elo),
		   agentic = COALESCE(excluded.agentic, benchmarks.agentic),
		   bfcl = COALESCE(excluded.bfcl, benchmarks.bfcl),
		   aider = COALESCE(excluded.aider, benchmarks.aider),
		   data_source = excluded.data_source,
		   updated_at = CURRENT_TIMESTAMP`,
		m.ID, m.Pricing.Prompt, m.Pricing.Completion,
		floatPtr(m.Benchmarks.SWEBench), floatPtr(m.Benchmarks.Intelligence), floatPtr(m.Benchmarks.ArenaELO),
		floatPtr(m.Benchmarks.Agentic), floatPtr(m.Benchmarks.BFCL), floatPtr(m.Benchmarks.Aider),
		m.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert benchmarks for %s: %w", m.ID, err)
	}

	return tx.Commit()
}

// ApplyBenchmarks merges the present benchmark fields into the record
// for the given model, leaving absent fields untouched. This is the
// write contract consumed by the external scraper, which only ever
// knows a subset of metrics per run.
func (s *Store) ApplyBenchmarks(ctx context.Context, modelID string, b domain.BenchmarkSet, source string) error {
	if modelID == "" {
		return errors.New("model id cannot be empty")
	}

	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	appendSet := func(column string, v *float64) {
		if v == nil {
			return
		}
		sets = append(sets, column+" = ?")
		args = append(args, *v)
	}

	appendSet("swe_bench", b.SWEBench)
	appendSet("intelligence", b.Intelligence)
	appendSet("arena_elo", b.ArenaELO)
	appendSet("agentic", b.Agentic)
	appendSet("bfcl", b.BFCL)
	appendSet("aider", b.Aider)

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "data_source = ?", "updated_at = CURRENT_TIMESTAMP")
	args = append(args, source, modelID)

	query := fmt.Sprintf("UPDATE benchmarks SET %s WHERE model_id = ?", strings.Join(sets, ", "))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to apply benchmarks for %s: %w", modelID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no benchmark record for model: %s", modelID)
	}

	return nil
}

// DeactivateModel soft-deletes a model so it stops appearing in the
// ranking views. The row and its benchmark history stay around.
func (s *Store) DeactivateModel(ctx context.Context, modelID string) error {
	if modelID == "" {
		return errors.New("model id cannot be empty")
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE models SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		modelID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate model %s: %w", modelID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("model not found: %s", modelID)
	}

	return nil
}

func floatPtr(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
