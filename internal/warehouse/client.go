package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/geovizlabs/geoviz/internal/observability"
)

const (
	// DefaultPageSize is the row count per fetched page.
	DefaultPageSize = 1000
	// MaxPages caps how many pages a single query may fetch. Statistics
	// and styling tolerate partial result sets, so truncation is safe.
	MaxPages = 50
)

// Batch is one normalized page of query results.
type Batch struct {
	Columns []string
	Rows    []map[string]any
	Offset  int
}

// Client executes queries against the warehouse, one page in flight at a
// time.
type Client struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewClient wraps an open warehouse connection.
func NewClient(db *sql.DB, log zerolog.Logger) *Client {
	return &Client{db: db, log: log.With().Str("component", "warehouse").Logger()}
}

// Available reports whether the warehouse connection is usable.
func (c *Client) Available() bool {
	return c != nil && c.db != nil
}

// QueryPage runs one page of the user's query. The query is wrapped as a
// subselect so LIMIT/OFFSET composes with whatever the user wrote.
func (c *Client) QueryPage(ctx context.Context, query string, offset, limit int) (Batch, error) {
	if !c.Available() {
		return Batch{}, fmt.Errorf("warehouse not available")
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	paged := fmt.Sprintf("SELECT * FROM (%s) LIMIT %d OFFSET %d", query, limit, offset)
	rows, err := c.db.QueryContext(ctx, paged)
	if err != nil {
		return Batch{}, fmt.Errorf("query page at offset %d: %w", offset, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return Batch{}, fmt.Errorf("reading columns: %w", err)
	}

	batch := Batch{Columns: columns, Offset: offset}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			continue
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		batch.Rows = append(batch.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Batch{}, fmt.Errorf("iterating page at offset %d: %w", offset, err)
	}

	observability.IncQueryPage()
	c.log.Debug().Int("offset", offset).Int("rows", len(batch.Rows)).Msg("page fetched")
	return batch, nil
}

// Pages fetches successive pages sequentially and invokes fn for each until
// a short page, the MaxPages cap, or an fn error. Callers receive partial
// result sets incrementally, so fn must be safe to call repeatedly.
func (c *Client) Pages(ctx context.Context, query string, pageSize int, fn func(Batch) error) error {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	for page := 0; page < MaxPages; page++ {
		batch, err := c.QueryPage(ctx, query, page*pageSize, pageSize)
		if err != nil {
			return err
		}
		if len(batch.Rows) > 0 {
			if err := fn(batch); err != nil {
				return err
			}
		}
		if len(batch.Rows) < pageSize {
			return nil
		}
	}
	c.log.Warn().Int("maxPages", MaxPages).Str("query", query).Msg("page cap reached, result set truncated")
	return nil
}

// Count returns the total row count of the user's query.
func (c *Client) Count(ctx context.Context, query string) (int, error) {
	if !c.Available() {
		return 0, fmt.Errorf("warehouse not available")
	}
	var n int
	counted := fmt.Sprintf("SELECT COUNT(*) FROM (%s)", query)
	if err := c.db.QueryRowContext(ctx, counted).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting query rows: %w", err)
	}
	return n, nil
}

// Tables returns all warehouse tables.
func (c *Client) Tables(ctx context.Context) ([]string, error) {
	if !c.Available() {
		return nil, fmt.Errorf("warehouse not available")
	}
	rows, err := c.db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err == nil {
			tables = append(tables, name)
		}
	}
	return tables, rows.Err()
}

// Exec runs a statement (dataset ingestion, table maintenance).
func (c *Client) Exec(ctx context.Context, stmt string, args ...any) error {
	if !c.Available() {
		return fmt.Errorf("warehouse not available")
	}
	_, err := c.db.ExecContext(ctx, stmt, args...)
	return err
}

// normalizeValue maps driver-specific scan values to plain Go values:
// []byte becomes string so downstream styling and JSON encoding see text.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
