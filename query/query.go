// Package query runs ad-hoc SQL against a Parquet file through DuckDB.
// The file is exposed as a view named "parquet".
package query

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/datatools-dev/parqscope/model"
)

// ErrEmptyQuery is the fixed message for empty or whitespace-only input
const ErrEmptyQuery = "Empty query"

// Outcome is the result of one query execution: either Data is set, or
// Err carries the engine's failure message verbatim.
type Outcome struct {
	Data *model.ResultSet
	Err  string
}

// OK reports whether the execution produced data
func (o *Outcome) OK() bool {
	return o.Err == ""
}

// Run executes a SQL query against the Parquet file at path. Empty or
// whitespace-only input is rejected locally without touching DuckDB.
// Every failure is returned as an Err outcome, never as a panic or a
// process-level error.
func Run(ctx context.Context, path, sqlText string) *Outcome {
	if strings.TrimSpace(sqlText) == "" {
		return &Outcome{Err: ErrEmptyQuery}
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return &Outcome{Err: err.Error()}
	}
	defer func() { _ = db.Close() }()

	view := fmt.Sprintf("CREATE VIEW parquet AS SELECT * FROM read_parquet('%s')",
		strings.ReplaceAll(path, "'", "''"))
	if _, err := db.ExecContext(ctx, view); err != nil {
		return &Outcome{Err: err.Error()}
	}

	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return &Outcome{Err: err.Error()}
	}
	defer func() { _ = rows.Close() }()

	data, err := normalize(rows)
	if err != nil {
		return &Outcome{Err: err.Error()}
	}
	return &Outcome{Data: data}
}

// normalize converts driver output into a ResultSet: column names in
// emitted order, each cell stringified, row order preserved
func normalize(rows *sql.Rows) (*model.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0)
	for rows.Next() {
		cells := make([]any, len(columns))
		refs := make([]any, len(columns))
		for i := range cells {
			refs[i] = &cells[i]
		}
		if err := rows.Scan(refs...); err != nil {
			return nil, err
		}

		row := make([]string, len(columns))
		for i, cell := range cells {
			row[i] = cellString(cell)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return model.NewResultSet(columns, out), nil
}

// cellString renders one scanned value for display; NULL is literal
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case float32:
		return fmt.Sprintf("%g", val)
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
