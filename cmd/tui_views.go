package cmd

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/datatools-dev/parqscope/model"
)

// metadataTab shows file-level metadata. Read-only; only the global
// bindings apply.
type metadataTab struct {
	fc *fileContext
}

func (t *metadataTab) Label() string {
	return "Metadata"
}

func (t *metadataTab) HandleKey(_ *tcell.EventKey, _ *NavState) {}

func (t *metadataTab) Hints() []keyHint {
	return nil
}

func (t *metadataTab) Draw(screen tcell.Screen, area rect, ex *Explorer) {
	info := t.fc.info
	pairs := [][2]string{
		{"File", t.fc.filePath},
		{"Created by", info.CreatedBy},
		{"Format version", fmt.Sprintf("%d", info.Version)},
		{"Rows", fmt.Sprintf("%d", info.NumRows)},
		{"Row groups", fmt.Sprintf("%d", info.NumRowGroups)},
		{"Leaf columns", fmt.Sprintf("%d", info.NumLeafColumns)},
		{"Compressed size", model.FormatBytes(info.TotalCompressedSize)},
		{"Uncompressed size", model.FormatBytes(info.TotalUncompressedSize)},
		{"Compression ratio", fmt.Sprintf("%.2f", info.CompressionRatio)},
	}
	drawKeyValues(screen, area, pairs)
}

// schemaTab walks the nested column tree. The selection counts
// primitive leaves only; groups are skipped over when moving.
type schemaTab struct {
	fc *fileContext
}

func (t *schemaTab) Label() string {
	return "Schema"
}

func (t *schemaTab) HandleKey(ev *tcell.EventKey, state *NavState) {
	switch ev.Key() {
	case tcell.KeyUp:
		state.Up()
	case tcell.KeyDown:
		if state.VerticalOffset < t.fc.schema.PrimitiveCount() {
			state.Down()
		}
	case tcell.KeyLeft:
		state.Left()
	case tcell.KeyRight:
		state.Right()
	}
}

func (t *schemaTab) Hints() []keyHint {
	return []keyHint{
		{"↑↓", "Column"},
		{"←→", "Scroll"},
	}
}

func (t *schemaTab) Draw(screen tcell.Screen, area rect, ex *Explorer) {
	tree := t.fc.schema
	state := ex.state
	state.ClampSelection(tree.PrimitiveCount())

	primIndices := tree.PrimitiveIndices()
	selectedLine := -1
	if state.VerticalOffset > 0 {
		selectedLine = primIndices[state.VerticalOffset-1]
	}

	// Left pane: the tree itself, scrolled so the selected leaf is visible
	treeWidth := tree.Width() + 4
	if max := area.w / 2; treeWidth > max {
		treeWidth = max
	}
	scrollTarget := 0
	if selectedLine >= 0 {
		scrollTarget = selectedLine
	}
	state.TreeScrollOffset = scrollIntoView(scrollTarget, state.TreeScrollOffset, area.h, tree.Len())
	for i := 0; i < area.h; i++ {
		line := state.TreeScrollOffset + i
		if line >= tree.Len() {
			break
		}
		style := styleDefault
		if line == selectedLine {
			style = styleSelected
		}
		printText(screen, area.x, area.y+i, treeWidth-1, tree.Label(line), style)
	}

	// Right pane: flat leaf column table aligned with the selection
	tableArea := rect{x: area.x + treeWidth, y: area.y, w: area.w - treeWidth, h: area.h}
	headers := []string{"Column", "Physical", "Logical", "Converted", "Repetition"}
	rows := make([][]string, 0, len(primIndices))
	for _, idx := range primIndices {
		node := tree.Nodes[idx]
		rows = append(rows, []string{strings.Join(node.Path, "."), node.PhysicalType, node.LogicalType, node.ConvertedType, node.RepetitionType})
	}
	state.AdjustScrollToSelection(tableArea.h-1, len(rows))
	drawTable(screen, tableArea, headers, rows, state.VerticalOffset-1, state.DataScrollOffset, state.HorizontalOffset)
}

// rowGroupsTab navigates storage layout in two dimensions: horizontal
// selects the row group, vertical selects a column chunk within it
// (0 keeps the aggregate view).
type rowGroupsTab struct {
	fc *fileContext
}

func (t *rowGroupsTab) Label() string {
	return "Row Groups"
}

func (t *rowGroupsTab) HandleKey(ev *tcell.EventKey, state *NavState) {
	switch ev.Key() {
	case tcell.KeyLeft:
		state.Left()
	case tcell.KeyRight:
		if state.HorizontalOffset < len(t.fc.rowGroups)-1 {
			state.Right()
		}
	case tcell.KeyUp:
		state.Up()
	case tcell.KeyDown:
		if state.VerticalOffset < t.numColumns(state) {
			state.Down()
		}
	case tcell.KeyPgUp:
		state.PageUp(state.VisibleDataRows, t.numColumns(state)+1)
	case tcell.KeyPgDn:
		state.PageDown(state.VisibleDataRows, t.numColumns(state)+1)
	}
}

func (t *rowGroupsTab) numColumns(state *NavState) int {
	rg := state.HorizontalOffset
	if rg < 0 || rg >= len(t.fc.chunks) {
		return 0
	}
	return len(t.fc.chunks[rg])
}

func (t *rowGroupsTab) Hints() []keyHint {
	return []keyHint{
		{"←→", "Row group"},
		{"↑↓", "Column chunk"},
	}
}

func (t *rowGroupsTab) Draw(screen tcell.Screen, area rect, ex *Explorer) {
	state := ex.state
	if len(t.fc.rowGroups) == 0 {
		printText(screen, area.x, area.y, area.w, "No row groups", styleDim)
		return
	}
	if state.HorizontalOffset > len(t.fc.rowGroups)-1 {
		state.HorizontalOffset = len(t.fc.rowGroups) - 1
	}
	rg := t.fc.rowGroups[state.HorizontalOffset]
	chunks := t.fc.chunks[state.HorizontalOffset]
	state.ClampSelection(len(chunks))

	header := fmt.Sprintf("Row group %d of %d", rg.Index+1, len(t.fc.rowGroups))
	printText(screen, area.x, area.y, area.w, header, styleTitle)
	summary := fmt.Sprintf("%d rows, %d columns, %s compressed / %s uncompressed (ratio %.2f)",
		rg.NumRows, rg.NumColumns,
		model.FormatBytes(rg.CompressedSize), model.FormatBytes(rg.UncompressedSize), rg.CompressionRatio)
	printText(screen, area.x, area.y+1, area.w, summary, styleDefault)

	body := rect{x: area.x, y: area.y + 3, w: area.w, h: area.h - 3}
	if body.h <= 0 {
		return
	}

	// Left pane: column chunk list; entry 0 is the aggregate view
	listWidth := area.w / 3
	state.DataScrollOffset = scrollIntoView(state.VerticalOffset, state.DataScrollOffset, body.h, len(chunks)+1)
	for i := 0; i < body.h; i++ {
		entry := state.DataScrollOffset + i
		if entry > len(chunks) {
			break
		}
		label := "(row group summary)"
		if entry > 0 {
			label = chunks[entry-1].Name
		}
		style := styleDefault
		if entry == state.VerticalOffset {
			style = styleSelected
		}
		printText(screen, body.x, body.y+i, listWidth-1, label, style)
	}

	// Right pane: detail of the selected chunk, or the per-group chunk
	// size table when the summary entry is selected
	detail := rect{x: body.x + listWidth, y: body.y, w: body.w - listWidth, h: body.h}
	if state.VerticalOffset == 0 {
		headers := []string{"Column", "Values", "Compressed", "Uncompressed", "Codec"}
		rows := make([][]string, 0, len(chunks))
		for _, c := range chunks {
			rows = append(rows, []string{
				c.Name,
				fmt.Sprintf("%d", c.NumValues),
				model.FormatBytes(c.CompressedSize),
				model.FormatBytes(c.UncompressedSize),
				c.Codec,
			})
		}
		drawTable(screen, detail, headers, rows, -1, 0, 0)
		return
	}
	c := chunks[state.VerticalOffset-1]
	nulls := "unknown"
	if c.NullCount != nil {
		nulls = fmt.Sprintf("%d", *c.NullCount)
	}
	drawKeyValues(screen, detail, [][2]string{
		{"Column", c.Name},
		{"Physical type", c.PhysicalType},
		{"Logical type", c.LogicalType},
		{"Converted type", c.ConvertedType},
		{"Codec", c.Codec},
		{"Values", fmt.Sprintf("%d", c.NumValues)},
		{"Nulls", nulls},
		{"Compressed", model.FormatBytes(c.CompressedSize)},
		{"Uncompressed", model.FormatBytes(c.UncompressedSize)},
		{"Min", c.MinValue},
		{"Max", c.MaxValue},
	})
}

// browseTab pages through sampled rows. When a search filter is active
// it substitutes the filtered result set for the base sample.
type browseTab struct {
	fc *fileContext
}

func (t *browseTab) Label() string {
	return "Browse"
}

func (t *browseTab) ResolveRows(state *NavState) *model.ResultSet {
	return t.fc.activeSample(state)
}

func (t *browseTab) HandleKey(ev *tcell.EventKey, state *NavState) {
	rows := t.fc.activeSample(state).TotalRows
	switch ev.Key() {
	case tcell.KeyUp:
		state.Up()
	case tcell.KeyDown:
		if state.VerticalOffset < rows {
			state.Down()
		}
	case tcell.KeyLeft:
		state.Left()
	case tcell.KeyRight:
		state.Right()
	case tcell.KeyPgUp:
		state.PageUp(state.VisibleDataRows, rows)
	case tcell.KeyPgDn:
		state.PageDown(state.VisibleDataRows, rows)
	case tcell.KeyRune:
		if r := ev.Rune(); (r == 'v' || r == 'V') && state.VerticalOffset > 0 {
			state.OpenDetail(state.VerticalOffset)
		}
	}
}

func (t *browseTab) Hints() []keyHint {
	return []keyHint{
		{"↑↓", "Row"},
		{"←→", "Column"},
		{"PgUp/PgDn", "Page"},
		{"v", "Row detail"},
	}
}

func (t *browseTab) Draw(screen tcell.Screen, area rect, ex *Explorer) {
	state := ex.state
	rs := t.fc.activeSample(state)
	state.ClampSelection(rs.TotalRows)

	title := fmt.Sprintf("Sample rows: %d", rs.TotalRows)
	if state.HasFilter() {
		title = fmt.Sprintf("Filtered rows: %d of %d (filter: %q)", rs.TotalRows, ex.ctx.sample.TotalRows, *state.SearchFilter)
	}
	printText(screen, area.x, area.y, area.w, title, styleTitle)

	tableArea := rect{x: area.x, y: area.y + 1, w: area.w, h: area.h - 1}
	state.VisibleDataRows = tableArea.h - 1
	if state.VisibleDataRows < 1 {
		state.VisibleDataRows = 1
	}
	state.AdjustScrollToSelection(state.VisibleDataRows, rs.TotalRows)
	drawTable(screen, tableArea, rs.Columns, rs.Rows, state.VerticalOffset-1, state.DataScrollOffset, state.HorizontalOffset)
}

// queryTab edits a free-text SQL buffer and shows the last outcome.
// Enter is handled by the coordinator; everything else lands here.
type queryTab struct {
	fc *fileContext
}

func (t *queryTab) Label() string {
	return "Query"
}

func (t *queryTab) ResolveRows(state *NavState) *model.ResultSet {
	if state.QueryOutcome != nil && state.QueryOutcome.OK() {
		return state.QueryOutcome.Data
	}
	return nil
}

func (t *queryTab) HandleKey(ev *tcell.EventKey, state *NavState) {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		state.QueryText = trimLastRune(state.QueryText)
	case tcell.KeyUp:
		state.Up()
	case tcell.KeyDown:
		if rs := t.ResolveRows(state); rs != nil && state.VerticalOffset < rs.TotalRows {
			state.Down()
		}
	case tcell.KeyLeft:
		state.Left()
	case tcell.KeyRight:
		state.Right()
	case tcell.KeyPgUp:
		if rs := t.ResolveRows(state); rs != nil {
			state.PageUp(state.VisibleDataRows, rs.TotalRows)
		}
	case tcell.KeyPgDn:
		if rs := t.ResolveRows(state); rs != nil {
			state.PageDown(state.VisibleDataRows, rs.TotalRows)
		}
	case tcell.KeyRune:
		r := ev.Rune()
		if r == 'v' || r == 'V' {
			// detail only over a successful result
			if t.ResolveRows(state) != nil {
				state.OpenDetail(state.VerticalOffset)
			}
			return
		}
		state.QueryText += string(r)
	}
}

func (t *queryTab) Hints() []keyHint {
	return []keyHint{
		{"Enter", "Run query"},
		{"Esc", "Clear"},
		{"v", "Row detail"},
	}
}

func (t *queryTab) Draw(screen tcell.Screen, area rect, ex *Explorer) {
	state := ex.state
	printText(screen, area.x, area.y, area.w, "SQL> "+state.QueryText+"▏", styleTitle)
	printText(screen, area.x, area.y+1, area.w, "Table is exposed as 'parquet'", styleDim)

	body := rect{x: area.x, y: area.y + 3, w: area.w, h: area.h - 3}
	if body.h <= 0 {
		return
	}
	outcome := state.QueryOutcome
	switch {
	case outcome == nil:
		printText(screen, body.x, body.y, body.w, "Press Enter to run the query", styleDim)
	case !outcome.OK():
		printText(screen, body.x, body.y, body.w, "Query failed", styleError)
		printText(screen, body.x, body.y+1, body.w, outcome.Err, styleError)
	default:
		rs := outcome.Data
		state.ClampSelection(rs.TotalRows)
		printText(screen, body.x, body.y, body.w, fmt.Sprintf("%d rows", rs.TotalRows), styleTitle)
		tableArea := rect{x: body.x, y: body.y + 1, w: body.w, h: body.h - 1}
		state.VisibleDataRows = tableArea.h - 1
		if state.VisibleDataRows < 1 {
			state.VisibleDataRows = 1
		}
		state.AdjustScrollToSelection(state.VisibleDataRows, rs.TotalRows)
		drawTable(screen, tableArea, rs.Columns, rs.Rows, state.VerticalOffset-1, state.DataScrollOffset, state.HorizontalOffset)
	}
}
