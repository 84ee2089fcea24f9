package journal

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"modernc.org/sqlite"
)

// directConnector implements driver.Connector to wrap an existing driver.Conn
type directConnector struct {
	conn driver.Conn
}

func (dc *directConnector) Connect(_ context.Context) (driver.Conn, error) {
	return dc.conn, nil
}

func (dc *directConnector) Driver() driver.Driver {
	return &sqlite.Driver{}
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dataset_path TEXT NOT NULL,
	encoding TEXT NOT NULL,
	delimiter INTEGER NOT NULL,
	quote INTEGER NOT NULL,
	terminator TEXT NOT NULL,
	rows_per_chunk INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_dataset_path ON runs(dataset_path);
CREATE TABLE IF NOT EXISTS chunks (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	chunk_index INTEGER NOT NULL,
	row_count INTEGER NOT NULL,
	scored_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (run_id, chunk_index)
);
`

// RunRecord holds the profiling outcome to persist for one dataset
type RunRecord struct {
	// DatasetPath is the profiled file path
	DatasetPath string
	// Encoding is the detected encoding name
	Encoding string
	// Delimiter is the field delimiter
	Delimiter rune
	// Quote is the quote character
	Quote rune
	// Terminator is the line terminator
	Terminator string
	// RowsPerChunk is the recommended chunk size
	RowsPerChunk int
}

// Run is a persisted profiling run
type Run struct {
	// ID is the run's journal identity
	ID int64
	// RunRecord is the persisted profiling outcome
	RunRecord
	// CreatedAt is when the run was journaled
	CreatedAt time.Time
}

// Journal records profiling runs and chunk scoring progress in SQLite.
// A single journal file can track many datasets; each profiling pass
// creates a new run and chunk progress hangs off the run.
//
// All methods are safe for concurrent use.
type Journal struct {
	db     *sql.DB
	closed atomic.Bool
}

// Open opens or creates a journal database at path
func Open(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("csvprobe journal: path cannot be empty")
	}
	return open(path)
}

// OpenInMemory opens an in-memory journal, useful for tests and
// single-shot runs where persistence across processes is not needed.
func OpenInMemory() (*Journal, error) {
	return open(":memory:")
}

func open(dsn string) (*Journal, error) {
	conn, err := (&sqlite.Driver{}).Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("csvprobe journal: failed to open database: %w", err)
	}

	db := sql.OpenDB(&directConnector{conn: conn})
	// The connector hands out a single shared connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("csvprobe journal: failed to create schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// CreateRun journals a new profiling run and returns its identity
func (j *Journal) CreateRun(ctx context.Context, record RunRecord) (int64, error) {
	if j.closed.Load() {
		return 0, ErrClosed
	}
	if err := validateRunRecord(record); err != nil {
		return 0, err
	}

	result, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (dataset_path, encoding, delimiter, quote, terminator, rows_per_chunk, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.DatasetPath, record.Encoding,
		int64(record.Delimiter), int64(record.Quote),
		record.Terminator, record.RowsPerChunk, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("csvprobe journal: failed to create run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("csvprobe journal: failed to read run id: %w", err)
	}
	return id, nil
}

// FindRun returns the most recent run for the dataset path.
// It returns ErrRunNotFound when the dataset was never journaled.
func (j *Journal) FindRun(ctx context.Context, datasetPath string) (*Run, error) {
	if j.closed.Load() {
		return nil, ErrClosed
	}

	row := j.db.QueryRowContext(ctx,
		`SELECT id, dataset_path, encoding, delimiter, quote, terminator, rows_per_chunk, created_at
		 FROM runs WHERE dataset_path = ? ORDER BY id DESC LIMIT 1`,
		datasetPath,
	)

	var run Run
	var delimiter, quote int64
	err := row.Scan(&run.ID, &run.DatasetPath, &run.Encoding,
		&delimiter, &quote, &run.Terminator, &run.RowsPerChunk, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, datasetPath)
	}
	if err != nil {
		return nil, fmt.Errorf("csvprobe journal: failed to read run: %w", err)
	}
	run.Delimiter = rune(delimiter)
	run.Quote = rune(quote)
	return &run, nil
}

// MarkChunkScored records that the chunk was scored. Re-marking the
// same chunk is allowed and refreshes the row count and timestamp, so
// retried uploads stay idempotent.
func (j *Journal) MarkChunkScored(ctx context.Context, runID int64, chunkIndex, rowCount int) error {
	if j.closed.Load() {
		return ErrClosed
	}
	if err := validateChunk(chunkIndex, rowCount); err != nil {
		return err
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO chunks (run_id, chunk_index, row_count, scored_at)
		 VALUES (?, ?, ?, ?)`,
		runID, chunkIndex, rowCount, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("csvprobe journal: failed to mark chunk %d scored: %w", chunkIndex, err)
	}
	return nil
}

// ScoredChunks returns the set of chunk indexes already scored for the
// run. An empty map means the run has not uploaded anything yet.
func (j *Journal) ScoredChunks(ctx context.Context, runID int64) (map[int]struct{}, error) {
	if j.closed.Load() {
		return nil, ErrClosed
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT chunk_index FROM chunks WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("csvprobe journal: failed to list scored chunks: %w", err)
	}
	defer rows.Close()

	scored := make(map[int]struct{})
	for rows.Next() {
		var index int
		if err := rows.Scan(&index); err != nil {
			return nil, fmt.Errorf("csvprobe journal: failed to scan chunk index: %w", err)
		}
		scored[index] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("csvprobe journal: failed to list scored chunks: %w", err)
	}
	return scored, nil
}

// Close closes the journal. Subsequent operations return ErrClosed.
func (j *Journal) Close() error {
	if j.closed.Swap(true) {
		return nil
	}
	return j.db.Close()
}
