package database

import (
	"strconv"
	"strings"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// IsValid reports whether the dialect is supported.
func (d Dialect) IsValid() bool {
	return d == DialectSQLite || d == DialectPostgres
}

// Rebind rewrites '?' placeholders into the dialect's form. Quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ForUpdate returns the row-locking suffix for a SELECT. SQLite transactions already hold the
// write lock, so it needs none.
func (d Dialect) ForUpdate() string {
	if d == DialectPostgres {
		return " FOR UPDATE"
	}
	return ""
}

// ReturningID makes an INSERT report the generated id in Result.LastInsertID. SQLite reports the
// rowid natively.
func (d Dialect) ReturningID(query, column string) string {
	if d == DialectPostgres {
		return query + " RETURNING " + column
	}
	return query
}

func hasReturning(query string) bool {
	return strings.Contains(strings.ToUpper(query), " RETURNING ")
}
