package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hangxie/parquet-go/v2/parquet"
	pio "github.com/hangxie/parquet-tools/io"
)

// flat footer schema for:
//
//	root
//	├── id        INT64
//	├── user      group
//	│   ├── name  BYTE_ARRAY (STRING)
//	│   └── age   INT32
//	└── tag       BYTE_ARRAY
func testFooterSchema() []*parquet.SchemaElement {
	required := parquet.FieldRepetitionType_REQUIRED
	optional := parquet.FieldRepetitionType_OPTIONAL
	return []*parquet.SchemaElement{
		{Name: "root", NumChildren: intPtr(3)},
		{Name: "id", Type: parquetTypePtr(parquet.Type_INT64), RepetitionType: &required},
		{Name: "user", NumChildren: intPtr(2), RepetitionType: &optional},
		{Name: "name", Type: parquetTypePtr(parquet.Type_BYTE_ARRAY), RepetitionType: &optional, ConvertedType: convertedTypePtr(parquet.ConvertedType_UTF8)},
		{Name: "age", Type: parquetTypePtr(parquet.Type_INT32), RepetitionType: &optional},
		{Name: "tag", Type: parquetTypePtr(parquet.Type_BYTE_ARRAY), RepetitionType: &optional},
	}
}

func Test_BuildSchemaTree(t *testing.T) {
	tree := BuildSchemaTree(testFooterSchema())

	require.Equal(t, 5, tree.Len(), "root element is skipped")

	tests := []struct {
		idx   int
		name  string
		depth int
		kind  SchemaNodeKind
		path  []string
	}{
		{0, "id", 0, SchemaNodePrimitive, []string{"id"}},
		{1, "user", 0, SchemaNodeGroup, []string{"user"}},
		{2, "name", 1, SchemaNodePrimitive, []string{"user", "name"}},
		{3, "age", 1, SchemaNodePrimitive, []string{"user", "age"}},
		{4, "tag", 0, SchemaNodePrimitive, []string{"tag"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node := tree.Nodes[tc.idx]
			require.Equal(t, tc.name, node.Name)
			require.Equal(t, tc.depth, node.Depth)
			require.Equal(t, tc.kind, node.Kind)
			require.Equal(t, tc.path, node.Path)
		})
	}
}

func Test_BuildSchemaTree_PrimitiveTypes(t *testing.T) {
	tree := BuildSchemaTree(testFooterSchema())

	id := tree.Nodes[0]
	require.Equal(t, "INT64", id.PhysicalType)
	require.Equal(t, "REQUIRED", id.RepetitionType)

	name := tree.Nodes[2]
	require.Equal(t, "BYTE_ARRAY", name.PhysicalType)
	require.Equal(t, "UTF8", name.ConvertedType)
}

func Test_BuildSchemaTree_Empty(t *testing.T) {
	require.Equal(t, 0, BuildSchemaTree(nil).Len())
	require.Equal(t, 0, BuildSchemaTree([]*parquet.SchemaElement{{Name: "root"}}).Len())
}

func Test_SchemaTree_PrimitiveIndices(t *testing.T) {
	tree := BuildSchemaTree(testFooterSchema())

	require.Equal(t, []int{0, 2, 3, 4}, tree.PrimitiveIndices())
	require.Equal(t, 4, tree.PrimitiveCount())
}

func Test_SchemaTree_Label(t *testing.T) {
	tree := BuildSchemaTree(testFooterSchema())

	require.Equal(t, "• id", tree.Label(0))
	require.Equal(t, "▸ user", tree.Label(1))
	require.Equal(t, "  • name", tree.Label(2))
	require.Equal(t, "", tree.Label(99))
	require.Equal(t, "", tree.Label(-1))
}

func Test_SchemaTree_Width(t *testing.T) {
	tree := BuildSchemaTree(testFooterSchema())

	// widest line is "  • name" at depth 1
	require.Equal(t, 8, tree.Width())
}

func Test_GetSchemaTree_NilReader(t *testing.T) {
	var pr *ParquetReader
	require.Equal(t, 0, pr.GetSchemaTree().Len())
}

func Test_GetSchemaTree_WithRealFile(t *testing.T) {
	parquetReader, err := pio.NewParquetFileReader(getTestParquetFilePath(), pio.ReadOption{})
	require.NoError(t, err)
	defer func() { _ = parquetReader.ReadStopWithError() }()

	pr := NewParquetReader(parquetReader)
	tree := pr.GetSchemaTree()

	require.Greater(t, tree.Len(), 0)
	require.Equal(t, pr.GetFileInfo().NumLeafColumns, tree.PrimitiveCount())
}
