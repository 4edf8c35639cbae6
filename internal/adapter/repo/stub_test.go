package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recordedCall struct {
	query string
	args  []any
}

// stubExecutor replays canned rows and records every statement it receives.
type stubExecutor struct {
	row     []any
	rowErr  error
	rows    [][]any
	err     error
	execTag pgconn.CommandTag
	calls   []recordedCall
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, recordedCall{query: query, args: args})
	return s.execTag, s.err
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.calls = append(s.calls, recordedCall{query: query, args: args})
	if s.rowErr != nil {
		return stubRow{err: s.rowErr}
	}
	if s.row == nil {
		return stubRow{err: pgx.ErrNoRows}
	}
	return stubRow{values: s.row}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, recordedCall{query: query, args: args})
	if s.err != nil {
		return nil, s.err
	}
	return &stubRows{rows: s.rows}, nil
}

func (s *stubExecutor) lastCall() recordedCall {
	if len(s.calls) == 0 {
		return recordedCall{}
	}
	return s.calls[len(s.calls)-1]
}

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignAll(dest, r.values)
}

type stubRows struct {
	rows [][]any
	idx  int
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	return assignAll(dest, r.rows[r.idx-1])
}

func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) Close()                                       {}
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, errors.New("values not supported") }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func assignAll(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i := range dest {
		if err := assign(dest[i], values[i]); err != nil {
			return fmt.Errorf("scan column %d: %w", i, err)
		}
	}
	return nil
}

func assign(dest, src any) error {
	switch d := dest.(type) {
	case *string:
		v, ok := src.(string)
		if !ok {
			return fmt.Errorf("want string, got %T", src)
		}
		*d = v
	case *bool:
		v, ok := src.(bool)
		if !ok {
			return fmt.Errorf("want bool, got %T", src)
		}
		*d = v
	case *int64:
		v, ok := src.(int64)
		if !ok {
			return fmt.Errorf("want int64, got %T", src)
		}
		*d = v
	case *float64:
		v, ok := src.(float64)
		if !ok {
			return fmt.Errorf("want float64, got %T", src)
		}
		*d = v
	case **float64:
		switch v := src.(type) {
		case nil:
			*d = nil
		case float64:
			*d = &v
		default:
			return fmt.Errorf("want float64 or nil, got %T", src)
		}
	case *time.Time:
		v, ok := src.(time.Time)
		if !ok {
			return fmt.Errorf("want time.Time, got %T", src)
		}
		*d = v
	default:
		return fmt.Errorf("unsupported destination %T", dest)
	}
	return nil
}
