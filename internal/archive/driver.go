package archive

import (
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported driver names, as used in configuration.
const (
	DriverSQLite   = "sqlite"
	DriverDuckDB   = "duckdb"
	DriverPostgres = "pgx"
)

// Drivers lists the accepted driver names.
func Drivers() []string {
	return []string{DriverSQLite, DriverDuckDB, DriverPostgres}
}

type dialect struct {
	driver     string
	sqlName    string
	dollarArgs bool
	singleConn bool
}

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "sqlite3":
		return dialect{driver: DriverSQLite, sqlName: "sqlite", singleConn: true}, nil
	case DriverDuckDB:
		return dialect{driver: DriverDuckDB, sqlName: "duckdb"}, nil
	case DriverPostgres, "postgres", "postgresql":
		return dialect{driver: DriverPostgres, sqlName: "pgx", dollarArgs: true}, nil
	default:
		return dialect{}, fmt.Errorf("unknown archive driver %q", driver)
	}
}

// bind rewrites ? placeholders into $n for drivers that need it.
func (d dialect) bind(query string) string {
	if !d.dollarArgs {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fileBacked reports whether dsn names a local database file.
func (d dialect) fileBacked(dsn string) bool {
	if d.driver == DriverPostgres {
		return false
	}
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") {
		return false
	}
	return !strings.Contains(dsn, "mode=memory")
}
