package cmd

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/datatools-dev/parqscope/query"
)

// Explorer is the interactive terminal session over one parquet file.
// It owns the tview application, the tab list, and the single
// NavState instance every handler and the renderer share.
type Explorer struct {
	app       *tview.Application
	pages     *tview.Pages
	ctx       *fileContext
	tabs      *tabManager
	state     *NavState
	statusMsg string
}

// NewExplorer creates the shell: tview application and page stack.
// The file context arrives later via activate, once loading finishes.
func NewExplorer() *Explorer {
	ex := &Explorer{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
		state: NewNavState(),
	}
	ex.app.SetRoot(ex.pages, true)
	return ex
}

// activate installs the loaded file context, the tab list, and the
// key router, and switches to the main frame
func (ex *Explorer) activate(fc *fileContext) {
	ex.ctx = fc
	ex.tabs = newTabManager(fc)
	ex.pages.AddPage("main", newFramePrimitive(ex), true, true)
	ex.pages.SwitchToPage("main")
	ex.app.SetInputCapture(ex.handleKey)
}

// Run blocks until the user quits
func (ex *Explorer) Run() error {
	return ex.app.Run()
}

// handleKey is the top-level input router. Precedence: quit combination
// first from any state, then the row detail overlay, then search entry,
// then the normal-mode bindings with the rest forwarded to the active
// tab.
func (ex *Explorer) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	ex.statusMsg = ""

	if ev.Key() == tcell.KeyCtrlX {
		ex.app.Stop()
		return nil
	}
	if ex.state.InDetail() {
		ex.handleDetailKey(ev)
		return nil
	}
	if ex.state.SearchMode {
		ex.handleSearchKey(ev)
		return nil
	}

	switch {
	case ev.Key() == tcell.KeyEscape:
		ex.handleEscape()
	case ev.Key() == tcell.KeyRune && ev.Rune() == '/' && !ex.isQueryTab():
		ex.state.SearchMode = true
		ex.state.SearchQuery = ""
	case ev.Key() == tcell.KeyEnter && ex.isQueryTab():
		ex.state.QueryOutcome = query.Run(context.Background(), ex.ctx.filePath, ex.state.QueryText)
	case ev.Key() == tcell.KeyTab:
		ex.tabs.Next()
		ex.state.Reset()
	case ev.Key() == tcell.KeyBacktab:
		ex.tabs.Prev()
		ex.state.Reset()
	default:
		ex.tabs.Active().HandleKey(ev, ex.state)
	}
	return nil
}

// handleEscape applies the contextual cancel order: active filter
// first, then the query buffer when the Query tab is active, then a
// plain offset reset.
func (ex *Explorer) handleEscape() {
	switch {
	case ex.state.HasFilter():
		ex.state.ClearSearchFilter()
		ex.state.Reset()
	case ex.isQueryTab():
		ex.state.QueryText = ""
		ex.state.QueryOutcome = nil
	default:
		ex.state.Reset()
	}
}

// handleSearchKey consumes every key while the search prompt is open
func (ex *Explorer) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ex.state.SearchMode = false
		ex.state.SearchQuery = ""
	case tcell.KeyEnter:
		q := ex.state.SearchQuery
		ex.state.FilteredSample = ex.ctx.sample.FilterRows(q)
		ex.state.SearchFilter = &q
		ex.state.Reset()
		ex.state.SearchMode = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ex.state.SearchQuery = trimLastRune(ex.state.SearchQuery)
	case tcell.KeyRune:
		ex.state.SearchQuery += string(ev.Rune())
	}
}

func (ex *Explorer) isQueryTab() bool {
	_, ok := ex.tabs.Active().(*queryTab)
	return ok
}
