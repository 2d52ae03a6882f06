package cmd

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// rect is a screen region in absolute coordinates
type rect struct {
	x, y, w, h int
}

var (
	styleDefault  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorBlack).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	styleActive   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
)

// printText writes text at (x, y) truncated to maxW cells and returns
// the number of cells written
func printText(screen tcell.Screen, x, y, maxW int, text string, style tcell.Style) int {
	if maxW <= 0 {
		return 0
	}
	col := 0
	for _, r := range text {
		if col >= maxW {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	return col
}

// drawKeyValues renders aligned "key  value" lines
func drawKeyValues(screen tcell.Screen, area rect, pairs [][2]string) {
	keyWidth := 0
	for _, p := range pairs {
		if len(p[0]) > keyWidth {
			keyWidth = len(p[0])
		}
	}
	for i, p := range pairs {
		if i >= area.h {
			break
		}
		printText(screen, area.x, area.y+i, area.w, fmt.Sprintf("%-*s", keyWidth, p[0]), styleHeader)
		printText(screen, area.x+keyWidth+2, area.y+i, area.w-keyWidth-2, p[1], styleDefault)
	}
}

const (
	minColumnWidth = 6
	maxColumnWidth = 28
)

// drawTable renders a header row plus the window of rows starting at
// scroll, highlighting selRow (absolute row index, -1 for none).
// hOff drops the leading hOff columns, clamped so at least the last
// column stays visible.
func drawTable(screen tcell.Screen, area rect, headers []string, rows [][]string, selRow, scroll, hOff int) {
	if area.h < 1 || len(headers) == 0 {
		return
	}
	if hOff > len(headers)-1 {
		hOff = len(headers) - 1
	}
	if hOff < 0 {
		hOff = 0
	}

	visible := area.h - 1
	end := scroll + visible
	if end > len(rows) {
		end = len(rows)
	}

	widths := make([]int, len(headers))
	for c, h := range headers {
		widths[c] = len([]rune(h))
	}
	for r := scroll; r < end && r >= 0; r++ {
		for c, cell := range rows[r] {
			if c < len(widths) && len([]rune(cell)) > widths[c] {
				widths[c] = len([]rune(cell))
			}
		}
	}
	for c := range widths {
		if widths[c] < minColumnWidth {
			widths[c] = minColumnWidth
		}
		if widths[c] > maxColumnWidth {
			widths[c] = maxColumnWidth
		}
	}

	drawRow := func(y int, cells []string, style tcell.Style) {
		x := area.x
		for c := hOff; c < len(headers); c++ {
			if x >= area.x+area.w {
				break
			}
			cell := ""
			if c < len(cells) {
				cell = cells[c]
			}
			avail := area.x + area.w - x
			printText(screen, x, y, min(widths[c], avail), fmt.Sprintf("%-*s", widths[c], cell), style)
			x += widths[c] + 2
		}
	}

	drawRow(area.y, headers, styleHeader)
	for i := 0; scroll+i < end; i++ {
		if scroll+i < 0 {
			continue
		}
		style := styleDefault
		if scroll+i == selRow {
			style = styleSelected
		}
		drawRow(area.y+1+i, rows[scroll+i], style)
	}
}

// framePrimitive paints the whole explorer frame: tab bar, active tab
// content (or the row detail overlay), and the footer. All viewport
// math happens here, once per frame, after the terminal size is known.
type framePrimitive struct {
	*tview.Box
	ex *Explorer
}

func newFramePrimitive(ex *Explorer) *framePrimitive {
	return &framePrimitive{Box: tview.NewBox(), ex: ex}
}

func (f *framePrimitive) Draw(screen tcell.Screen) {
	f.Box.DrawForSubclass(screen, f)
	x, y, w, h := f.GetInnerRect()
	if w <= 0 || h < 4 {
		return
	}
	ex := f.ex
	state := ex.state

	f.drawTabBar(screen, x, y, w)
	printText(screen, x, y+1, w, ex.ctx.filePath, styleDim)

	content := rect{x: x, y: y + 3, w: w, h: h - 4}
	// capacity first, then each view clamps its own selection
	state.VisibleDataRows = content.h - 2
	if state.VisibleDataRows < 1 {
		state.VisibleDataRows = 1
	}

	if state.InDetail() {
		ex.drawDetail(screen, content)
	} else {
		ex.tabs.Active().Draw(screen, content, ex)
	}

	f.drawFooter(screen, x, y+h-1, w)
}

func (f *framePrimitive) drawTabBar(screen tcell.Screen, x, y, w int) {
	col := x
	for i, label := range f.ex.tabs.Labels() {
		style := styleDefault
		if i == f.ex.tabs.Index() {
			style = styleActive
		}
		col += printText(screen, col, y, w-(col-x), " "+label+" ", style)
		col += printText(screen, col, y, w-(col-x), "  ", styleDefault)
	}
}

func (f *framePrimitive) drawFooter(screen tcell.Screen, x, y, w int) {
	ex := f.ex
	state := ex.state

	if state.SearchMode {
		printText(screen, x, y, w, "Search: "+state.SearchQuery+"▏", styleTitle)
		return
	}
	if ex.statusMsg != "" {
		printText(screen, x, y, w, ex.statusMsg, styleTitle)
		return
	}

	var hints []keyHint
	if state.InDetail() {
		hints = detailHints
	} else {
		hints = append(hints, ex.tabs.Active().Hints()...)
		hints = append(hints, globalHints...)
	}
	parts := make([]string, 0, len(hints))
	for _, hint := range hints {
		parts = append(parts, hint.Key+" "+hint.Action)
	}
	line := strings.Join(parts, " | ")
	if state.HasFilter() {
		line = fmt.Sprintf("Filter: %q | %s", *state.SearchFilter, line)
	}
	printText(screen, x, y, w, line, styleDim)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
