package cmd

import (
	"github.com/gdamore/tcell/v2"

	"github.com/datatools-dev/parqscope/model"
)

// fileContext bundles everything the explorer reads from an opened
// parquet file: metadata, schema tree, per-row-group layout, and the
// sampled rows. It is built once at startup and treated as read-only
// afterwards.
type fileContext struct {
	filePath  string
	info      model.FileInfo
	schema    *model.SchemaTree
	rowGroups []model.RowGroupInfo
	chunks    [][]model.ColumnChunkInfo
	sample    *model.ResultSet
}

// activeSample returns the filtered result set when a filter is in
// effect, the full sample otherwise
func (fc *fileContext) activeSample(state *NavState) *model.ResultSet {
	if state.FilteredSample != nil {
		return state.FilteredSample
	}
	return fc.sample
}

// keyHint is one entry of a tab's footer hint line
type keyHint struct {
	Key    string
	Action string
}

// globalHints apply in every tab
var globalHints = []keyHint{
	{"Tab", "Switch"},
	{"/", "Search"},
	{"Esc", "Back"},
	{"^X", "Quit"},
}

// tabView is one of the explorer's tab strategies. HandleKey receives
// keys the mode coordinator did not consume; draw happens in the frame
// primitive via the per-tab draw methods.
type tabView interface {
	Label() string
	HandleKey(ev *tcell.EventKey, state *NavState)
	Hints() []keyHint
	Draw(screen tcell.Screen, area rect, ex *Explorer)
}

// rowResolver is implemented by tabs whose content is a result set a
// row detail overlay can be opened over
type rowResolver interface {
	ResolveRows(state *NavState) *model.ResultSet
}

// tabManager owns the ordered tab list and the active index
type tabManager struct {
	tabs   []tabView
	active int
}

func newTabManager(fc *fileContext) *tabManager {
	return &tabManager{
		tabs: []tabView{
			&metadataTab{fc: fc},
			&schemaTab{fc: fc},
			&rowGroupsTab{fc: fc},
			&browseTab{fc: fc},
			&queryTab{fc: fc},
		},
	}
}

func (tm *tabManager) Active() tabView {
	return tm.tabs[tm.active]
}

func (tm *tabManager) Index() int {
	return tm.active
}

func (tm *tabManager) Labels() []string {
	labels := make([]string, len(tm.tabs))
	for i, t := range tm.tabs {
		labels[i] = t.Label()
	}
	return labels
}

// Next cycles forward, wrapping at the end
func (tm *tabManager) Next() {
	tm.active = (tm.active + 1) % len(tm.tabs)
}

// Prev cycles backward, wrapping at the start
func (tm *tabManager) Prev() {
	tm.active = (tm.active - 1 + len(tm.tabs)) % len(tm.tabs)
}
