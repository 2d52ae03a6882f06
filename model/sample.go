package model

import (
	"strings"

	"github.com/hangxie/parquet-go/v2/reader"
)

// DefaultSampleLimit is how many rows the explorer samples from a file
const DefaultSampleLimit = 1000

// ResultSet is a rectangular dataset of stringified cells: ordered
// column names plus ordered rows. It is immutable once built; consumers
// hold a reference and never copy or mutate it.
type ResultSet struct {
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
	TotalColumns int        `json:"totalColumns"`
	TotalRows    int        `json:"totalRows"`
}

// NewResultSet builds a ResultSet from columns and rows, filling in the counts
func NewResultSet(columns []string, rows [][]string) *ResultSet {
	return &ResultSet{
		Columns:      columns,
		Rows:         rows,
		TotalColumns: len(columns),
		TotalRows:    len(rows),
	}
}

// FilterRows returns a new ResultSet containing only the rows where any
// cell matches the query, case-insensitive substring match across all
// columns. The receiver is never mutated; an empty query matches every row.
func (rs *ResultSet) FilterRows(query string) *ResultSet {
	needle := strings.ToLower(query)

	filtered := make([][]string, 0)
	for _, row := range rs.Rows {
		if needle == "" || strings.Contains(strings.ToLower(strings.Join(row, " ")), needle) {
			filtered = append(filtered, row)
		}
	}

	return NewResultSet(rs.Columns, filtered)
}

// Row returns the row at idx, or nil when idx is out of range
func (rs *ResultSet) Row(idx int) []string {
	if idx < 0 || idx >= len(rs.Rows) {
		return nil
	}
	return rs.Rows[idx]
}

// ReadSample reads up to limit rows from the file and stringifies every
// cell for display. Values are read column by column and assembled into
// rows; nulls become the literal "NULL".
func (pr *ParquetReader) ReadSample(limit int) (*ResultSet, error) {
	if pr == nil || pr.metadata == nil {
		return nil, ErrInvalidRowGroupIndex
	}
	if limit <= 0 {
		limit = DefaultSampleLimit
	}

	numRows := int(pr.metadata.NumRows)
	if numRows > limit {
		numRows = limit
	}

	columns := pr.leafColumnNames()
	if len(columns) == 0 || numRows == 0 {
		return NewResultSet(columns, [][]string{}), nil
	}

	cells := make([][]string, len(columns))
	for colIdx := range columns {
		col, err := pr.readColumnSample(colIdx, numRows)
		if err != nil {
			return nil, err
		}
		cells[colIdx] = col
	}

	rows := make([][]string, numRows)
	for rowIdx := range rows {
		row := make([]string, len(columns))
		for colIdx := range columns {
			if rowIdx < len(cells[colIdx]) {
				row[colIdx] = cells[colIdx][rowIdx]
			} else {
				row[colIdx] = nullDisplay
			}
		}
		rows[rowIdx] = row
	}

	return NewResultSet(columns, rows), nil
}

const nullDisplay = "NULL"

// leafColumnNames returns the dot-joined path of every leaf column, in
// the physical column order used by the row groups
func (pr *ParquetReader) leafColumnNames() []string {
	if len(pr.metadata.RowGroups) == 0 {
		return []string{}
	}

	rg := pr.metadata.RowGroups[0]
	names := make([]string, len(rg.Columns))
	for i, col := range rg.Columns {
		names[i] = formatColumnName(col.MetaData.PathInSchema)
	}
	return names
}

// readColumnSample reads up to numRows values from one leaf column and
// formats them with the column's type information
func (pr *ParquetReader) readColumnSample(colIndex, numRows int) ([]string, error) {
	meta := pr.metadata.RowGroups[0].Columns[colIndex].MetaData
	schemaElem := findSchemaElement(pr.metadata.Schema, meta.PathInSchema)

	colReader, err := reader.NewParquetColumnReader(pr.Reader.PFile, 4)
	if err != nil {
		return nil, err
	}
	defer func() { _ = colReader.ReadStopWithError() }()

	values, _, _, err := colReader.ReadColumnByIndex(int64(colIndex), int64(numRows))
	if err != nil {
		return nil, err
	}

	formatted := make([]string, len(values))
	for i, val := range values {
		if val == nil {
			formatted[i] = nullDisplay
			continue
		}
		formatted[i] = FormatValue(val, meta.Type, schemaElem)
	}
	return formatted, nil
}
