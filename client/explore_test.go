package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datatools-dev/parqscope/model"
)

func Test_GetSample(t *testing.T) {
	expected := model.NewResultSet(
		[]string{"id", "name"},
		[][]string{{"1", "a"}, {"2", "NULL"}},
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sample", r.URL.Path)
		require.Equal(t, "25", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := NewParquetClient(server.URL)
	sample, err := client.GetSample(25)

	require.NoError(t, err)
	require.Equal(t, expected.Columns, sample.Columns)
	require.Equal(t, expected.Rows, sample.Rows)
	require.Equal(t, 2, sample.TotalRows)
}

func Test_FilterSample(t *testing.T) {
	expected := model.NewResultSet([]string{"id"}, [][]string{{"42"}})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sample/filter", r.URL.Path)
		require.Equal(t, "a b&c", r.URL.Query().Get("q"), "filter text must be escaped")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := NewParquetClient(server.URL)
	filtered, err := client.FilterSample("a b&c")

	require.NoError(t, err)
	require.Equal(t, 1, filtered.TotalRows)
}

func Test_RunQuery(t *testing.T) {
	expected := model.NewResultSet([]string{"count"}, [][]string{{"100"}})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, "POST", r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		require.Equal(t, "SELECT COUNT(*) AS count FROM parquet", payload["query"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := NewParquetClient(server.URL)
	result, err := client.RunQuery("SELECT COUNT(*) AS count FROM parquet")

	require.NoError(t, err)
	require.Equal(t, expected.Rows, result.Rows)
}

func Test_RunQuery_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Empty query"}`))
	}))
	defer server.Close()

	client := NewParquetClient(server.URL)
	_, err := client.RunQuery("")

	require.Error(t, err)
	require.Contains(t, err.Error(), "Empty query")
}

func Test_GetSchemaTree(t *testing.T) {
	expected := &model.SchemaTree{Nodes: []model.SchemaNode{
		{Name: "id", Path: []string{"id"}, Kind: model.SchemaNodePrimitive, PhysicalType: "INT64"},
	}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schema/tree", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := NewParquetClient(server.URL)
	tree, err := client.GetSchemaTree()

	require.NoError(t, err)
	require.Equal(t, 1, tree.Len())
	require.Equal(t, "id", tree.Nodes[0].Name)
}
