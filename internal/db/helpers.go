package db

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Dialect selects placeholder style and insert-id strategy.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// ParseDialect maps a DB_DRIVER value to a Dialect; unknown values mean postgres.
func ParseDialect(driver string) Dialect {
	if strings.EqualFold(strings.TrimSpace(driver), "mysql") {
		return MySQL
	}
	return Postgres
}

// Rebind rewrites ? placeholders into $1..$n for postgres. Queries are written
// once with ? and rebound at the call site.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// Execer is the subset of *sql.DB and *sql.Tx used by repositories.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertID runs an INSERT and returns the generated key. Postgres has no
// LastInsertId, so the statement gets a RETURNING clause there.
func (d Dialect) InsertID(ctx context.Context, q Execer, query, idColumn string, args ...any) (int64, error) {
	if d == Postgres {
		var id int64
		err := q.QueryRowContext(ctx, d.Rebind(query)+" RETURNING "+idColumn, args...).Scan(&id)
		return id, err
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// IsForeignKeyViolation detects a dangling reference on insert/update for
// both supported drivers.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1451 || myErr.Number == 1452
	}
	return false
}

// NullIfEmpty helps store optional strings as NULL.
func NullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func NullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func NullFloatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
