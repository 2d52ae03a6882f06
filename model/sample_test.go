package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	pio "github.com/hangxie/parquet-tools/io"
)

func Test_NewResultSet(t *testing.T) {
	rs := NewResultSet([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})

	require.Equal(t, 2, rs.TotalColumns)
	require.Equal(t, 2, rs.TotalRows)
	require.Equal(t, []string{"a", "b"}, rs.Columns)
}

func Test_NewResultSet_Empty(t *testing.T) {
	rs := NewResultSet([]string{"a"}, nil)
	require.Equal(t, 0, rs.TotalRows)
	require.Equal(t, 1, rs.TotalColumns)
}

func Test_FilterRows(t *testing.T) {
	rs := NewResultSet(
		[]string{"id", "level", "message"},
		[][]string{
			{"1", "INFO", "started"},
			{"2", "ERROR", "connection refused"},
			{"3", "info", "heartbeat"},
			{"4", "WARN", "slow Error response"},
		},
	)

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"empty query matches all", "", 4},
		{"case insensitive", "error", 2},
		{"upper case needle", "ERROR", 2},
		{"match in any column", "heartbeat", 1},
		{"match on id column", "1", 1},
		{"no match", "panic", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filtered := rs.FilterRows(tc.query)
			require.Equal(t, tc.expected, filtered.TotalRows)
			require.Equal(t, rs.Columns, filtered.Columns)
		})
	}

	// source set is never mutated
	require.Equal(t, 4, rs.TotalRows)
}

func Test_FilterRows_LargeSet(t *testing.T) {
	rows := make([][]string, 1000)
	for i := range rows {
		status := "ok"
		if i%400 == 7 {
			status = "error"
		}
		rows[i] = []string{fmt.Sprintf("%d", i), status}
	}
	rs := NewResultSet([]string{"id", "status"}, rows)

	filtered := rs.FilterRows("error")
	require.Equal(t, 3, filtered.TotalRows)
	require.Equal(t, 1000, rs.TotalRows)
}

func Test_ResultSet_Row(t *testing.T) {
	rs := NewResultSet([]string{"a"}, [][]string{{"x"}, {"y"}})

	require.Equal(t, []string{"x"}, rs.Row(0))
	require.Equal(t, []string{"y"}, rs.Row(1))
	require.Nil(t, rs.Row(2))
	require.Nil(t, rs.Row(-1))
}

func Test_ReadSample_WithRealFile(t *testing.T) {
	parquetReader, err := pio.NewParquetFileReader(getTestParquetFilePath(), pio.ReadOption{})
	require.NoError(t, err)
	defer func() { _ = parquetReader.ReadStopWithError() }()

	pr := NewParquetReader(parquetReader)
	info := pr.GetFileInfo()

	rs, err := pr.ReadSample(DefaultSampleLimit)
	require.NoError(t, err)
	require.Equal(t, info.NumLeafColumns, rs.TotalColumns)
	require.Greater(t, rs.TotalRows, 0)
	for _, row := range rs.Rows {
		require.Len(t, row, rs.TotalColumns, "every row must be rectangular")
	}
}

func Test_ReadSample_LimitRespected(t *testing.T) {
	parquetReader, err := pio.NewParquetFileReader(getTestParquetFilePath(), pio.ReadOption{})
	require.NoError(t, err)
	defer func() { _ = parquetReader.ReadStopWithError() }()

	pr := NewParquetReader(parquetReader)

	rs, err := pr.ReadSample(2)
	require.NoError(t, err)
	require.LessOrEqual(t, rs.TotalRows, 2)
}
