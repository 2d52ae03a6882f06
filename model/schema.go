package model

import (
	"strings"

	"github.com/hangxie/parquet-go/v2/parquet"
)

// SchemaNodeKind distinguishes group nodes from primitive leaf columns
type SchemaNodeKind int

const (
	// SchemaNodeGroup is a nested group (struct, list, map)
	SchemaNodeGroup SchemaNodeKind = iota
	// SchemaNodePrimitive is a leaf column carrying data
	SchemaNodePrimitive
)

// SchemaNode is one line of the schema tree, in depth-first pre-order
type SchemaNode struct {
	Name           string         `json:"name"`
	Path           []string       `json:"path"`
	Depth          int            `json:"depth"`
	Kind           SchemaNodeKind `json:"kind"`
	PhysicalType   string         `json:"physicalType,omitempty"`
	LogicalType    string         `json:"logicalType,omitempty"`
	ConvertedType  string         `json:"convertedType,omitempty"`
	RepetitionType string         `json:"repetitionType,omitempty"`
}

// SchemaTree is the flattened schema of a file: every node in
// depth-first pre-order, the way the footer stores it
type SchemaTree struct {
	Nodes []SchemaNode `json:"nodes"`
}

// BuildSchemaTree walks the flat footer schema and reconstructs the
// nested node tree. The root element is skipped; depth 0 is a top-level
// field.
func BuildSchemaTree(schema []*parquet.SchemaElement) *SchemaTree {
	tree := &SchemaTree{Nodes: make([]SchemaNode, 0, len(schema))}

	type stackEntry struct {
		name       string
		childCount int
	}
	var stack []stackEntry

	for i, elem := range schema {
		// The first element is the synthetic root
		if i == 0 || elem.Name == "" {
			continue
		}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.childCount > 0 {
				top.childCount--
				break
			}
			stack = stack[:len(stack)-1]
		}

		path := make([]string, 0, len(stack)+1)
		for _, entry := range stack {
			path = append(path, entry.name)
		}
		path = append(path, elem.Name)

		node := SchemaNode{
			Name:  elem.Name,
			Path:  path,
			Depth: len(path) - 1,
		}
		if elem.RepetitionType != nil {
			node.RepetitionType = elem.RepetitionType.String()
		}

		childCount := 0
		if elem.NumChildren != nil {
			childCount = int(*elem.NumChildren)
		}

		if elem.IsSetType() && childCount == 0 {
			node.Kind = SchemaNodePrimitive
			node.PhysicalType = elem.Type.String()
			node.LogicalType = formatLogicalType(elem.LogicalType)
			node.ConvertedType = "-"
			if elem.ConvertedType != nil {
				node.ConvertedType = elem.ConvertedType.String()
			}
		} else {
			node.Kind = SchemaNodeGroup
			node.LogicalType = formatLogicalType(elem.LogicalType)
		}

		tree.Nodes = append(tree.Nodes, node)

		if childCount > 0 {
			stack = append(stack, stackEntry{name: elem.Name, childCount: childCount})
		}
	}

	return tree
}

// Len returns the number of tree lines
func (t *SchemaTree) Len() int {
	return len(t.Nodes)
}

// PrimitiveIndices maps each primitive leaf, in order, to its line index
// in the tree. Selection k in a column list resolves to tree line
// PrimitiveIndices()[k].
func (t *SchemaTree) PrimitiveIndices() []int {
	indices := make([]int, 0, len(t.Nodes))
	for i, node := range t.Nodes {
		if node.Kind == SchemaNodePrimitive {
			indices = append(indices, i)
		}
	}
	return indices
}

// PrimitiveCount returns the number of leaf columns in the tree
func (t *SchemaTree) PrimitiveCount() int {
	return len(t.PrimitiveIndices())
}

// Label renders one tree line with indentation and a branch marker
func (t *SchemaTree) Label(idx int) string {
	if idx < 0 || idx >= len(t.Nodes) {
		return ""
	}
	node := t.Nodes[idx]

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", node.Depth))
	if node.Kind == SchemaNodeGroup {
		b.WriteString("▸ ")
	} else {
		b.WriteString("• ")
	}
	b.WriteString(node.Name)
	return b.String()
}

// Width returns the widest rendered label, used to size the tree pane
func (t *SchemaTree) Width() int {
	width := 0
	for i := range t.Nodes {
		if l := len([]rune(t.Label(i))); l > width {
			width = l
		}
	}
	return width
}

// GetSchemaTree builds the schema node tree from the file footer
func (pr *ParquetReader) GetSchemaTree() *SchemaTree {
	if pr == nil || pr.metadata == nil {
		return &SchemaTree{}
	}
	return BuildSchemaTree(pr.metadata.Schema)
}
