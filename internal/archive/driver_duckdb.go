//go:build cgo

package archive

// The DuckDB driver requires cgo.
import _ "github.com/duckdb/duckdb-go/v2"
