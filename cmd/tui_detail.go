package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/datatools-dev/parqscope/model"
)

// detailPageSize is how far PgUp/PgDn move the detail overlay
const detailPageSize = 10

var detailHints = []keyHint{
	{"↑↓", "Scroll"},
	{"PgUp/PgDn", "Page"},
	{"←→", "Shift"},
	{"c", "Copy row"},
	{"Esc", "Close"},
	{"^X", "Quit"},
}

// handleDetailKey consumes every key while the row detail overlay is
// open; the underlying tab's bindings are inert.
func (ex *Explorer) handleDetailKey(ev *tcell.EventKey) {
	state := ex.state
	switch ev.Key() {
	case tcell.KeyEscape:
		state.CloseDetail()
	case tcell.KeyUp:
		state.DetailScrollV = saturatingSub(state.DetailScrollV, 1)
	case tcell.KeyDown:
		state.DetailScrollV++
	case tcell.KeyPgUp:
		state.DetailScrollV = saturatingSub(state.DetailScrollV, detailPageSize)
	case tcell.KeyPgDn:
		state.DetailScrollV += detailPageSize
	case tcell.KeyLeft:
		state.DetailScrollH = saturatingSub(state.DetailScrollH, 1)
	case tcell.KeyRight:
		state.DetailScrollH++
	case tcell.KeyRune:
		if r := ev.Rune(); r == 'c' || r == 'C' {
			ex.copyDetailRow()
		}
	}
}

// detailRow resolves the overlay's row against the active tab's result
// set. A nil result set or an out-of-range index yields nil.
func (ex *Explorer) detailRow() (*model.ResultSet, []string) {
	resolver, ok := ex.tabs.Active().(rowResolver)
	if !ok || ex.state.DetailRow == nil {
		return nil, nil
	}
	rs := resolver.ResolveRows(ex.state)
	if rs == nil {
		return nil, nil
	}
	return rs, rs.Row(*ex.state.DetailRow - 1)
}

// copyDetailRow puts the current detail row on the system clipboard as
// "column: value" lines
func (ex *Explorer) copyDetailRow() {
	rs, row := ex.detailRow()
	if row == nil {
		return
	}
	var b strings.Builder
	for i, col := range rs.Columns {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		fmt.Fprintf(&b, "%s: %s\n", col, cell)
	}
	if err := clipboard.WriteAll(b.String()); err != nil {
		ex.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	ex.statusMsg = "Row copied to clipboard"
}

// drawDetail paints the overlay: one "column: value" line per column,
// scrolled vertically over columns and horizontally within values
func (ex *Explorer) drawDetail(screen tcell.Screen, area rect) {
	state := ex.state
	rs, row := ex.detailRow()
	if row == nil {
		// result set shrank under the overlay (filter, re-run query)
		printText(screen, area.x, area.y, area.w, "Row out of range", styleError)
		return
	}

	printText(screen, area.x, area.y, area.w, fmt.Sprintf("Row %d of %d", *state.DetailRow, rs.TotalRows), styleTitle)

	body := rect{x: area.x, y: area.y + 2, w: area.w, h: area.h - 2}
	if state.DetailScrollV > len(rs.Columns)-1 {
		state.DetailScrollV = saturatingSub(len(rs.Columns), 1)
	}

	nameWidth := 0
	for _, col := range rs.Columns {
		if len(col) > nameWidth {
			nameWidth = len(col)
		}
	}
	for i := 0; i < body.h; i++ {
		idx := state.DetailScrollV + i
		if idx >= len(rs.Columns) {
			break
		}
		cell := ""
		if idx < len(row) {
			cell = row[idx]
		}
		if state.DetailScrollH < len(cell) {
			cell = cell[state.DetailScrollH:]
		} else {
			cell = ""
		}
		printText(screen, body.x, body.y+i, nameWidth, fmt.Sprintf("%-*s", nameWidth, rs.Columns[idx]), styleHeader)
		printText(screen, body.x+nameWidth+2, body.y+i, body.w-nameWidth-2, cell, styleDefault)
	}
}
