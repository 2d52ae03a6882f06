package cmd

import (
	"github.com/datatools-dev/parqscope/model"
	"github.com/datatools-dev/parqscope/query"
)

// NavState carries all per-session navigation state: cursor and scroll
// offsets, search/filter state, the query buffer and its last outcome,
// and the row detail overlay. It is owned by the explorer event loop
// and mutated only by the mode coordinator and the active tab.
//
// VerticalOffset doubles as the selection: 0 means "no row / header",
// k means data row k-1. Offsets saturate at zero on decrement; upper
// bounds are enforced lazily by consumers at render time.
type NavState struct {
	HorizontalOffset int
	VerticalOffset   int
	TreeScrollOffset int
	DataScrollOffset int
	VisibleDataRows  int

	// Search: "/" to enter search mode, Enter to filter, Esc to cancel or clear
	SearchMode     bool
	SearchQuery    string
	SearchFilter   *string
	FilteredSample *model.ResultSet

	// Query tab
	QueryText    string
	QueryOutcome *query.Outcome

	// Row detail overlay: when DetailRow is set, the overlay captures input
	DetailRow     *int
	DetailScrollV int
	DetailScrollH int
}

// NewNavState returns zeroed session state
func NewNavState() *NavState {
	return &NavState{VisibleDataRows: 20}
}

// Reset zeroes the four base offsets, leaving modal, search, and query
// state intact. Invoked on tab switch and filter clear.
func (s *NavState) Reset() {
	s.HorizontalOffset = 0
	s.VerticalOffset = 0
	s.TreeScrollOffset = 0
	s.DataScrollOffset = 0
}

// ClearSearchFilter drops the active filter and its result together;
// they are never cleared independently. Idempotent.
func (s *NavState) ClearSearchFilter() {
	s.SearchFilter = nil
	s.FilteredSample = nil
}

// HasFilter reports whether a search filter is active
func (s *NavState) HasFilter() bool {
	return s.SearchFilter != nil
}

// Down moves the selection down by one; the upper bound is enforced by
// consumers, not here
func (s *NavState) Down() {
	s.VerticalOffset++
}

// Up moves the selection up by one, saturating at zero
func (s *NavState) Up() {
	s.VerticalOffset = saturatingSub(s.VerticalOffset, 1)
}

// Right moves the horizontal offset right by one
func (s *NavState) Right() {
	s.HorizontalOffset++
}

// Left moves the horizontal offset left by one, saturating at zero
func (s *NavState) Left() {
	s.HorizontalOffset = saturatingSub(s.HorizontalOffset, 1)
}

// PageUp moves the selection up by one page and keeps it visible
func (s *NavState) PageUp(visibleRows, maxRows int) {
	s.VerticalOffset = saturatingSub(s.VerticalOffset, visibleRows)
	s.AdjustScrollToSelection(visibleRows, maxRows)
}

// PageDown moves the selection down by one page, clamped to the last
// row, and keeps it visible
func (s *NavState) PageDown(visibleRows, maxRows int) {
	s.VerticalOffset += visibleRows
	if last := saturatingSub(maxRows, 1); s.VerticalOffset > last {
		s.VerticalOffset = last
	}
	s.AdjustScrollToSelection(visibleRows, maxRows)
}

// AdjustScrollToSelection recomputes DataScrollOffset so the selection
// stays inside the visible window
func (s *NavState) AdjustScrollToSelection(visibleRows, maxRows int) {
	s.DataScrollOffset = scrollIntoView(s.VerticalOffset, s.DataScrollOffset, visibleRows, maxRows)
}

// ClampSelection pulls the selection back inside [0, total]. Consumers
// call this at the start of every render pass, before any viewport
// computation, so a result set that shrank (filter, new query) can
// never leave a dangling selection.
func (s *NavState) ClampSelection(total int) {
	if s.VerticalOffset > total {
		s.VerticalOffset = total
	}
	if s.VerticalOffset < 0 {
		s.VerticalOffset = 0
	}
}

// OpenDetail opens the row detail overlay at the given row with fresh
// scroll offsets
func (s *NavState) OpenDetail(row int) {
	s.DetailRow = &row
	s.DetailScrollV = 0
	s.DetailScrollH = 0
}

// CloseDetail dismisses the row detail overlay
func (s *NavState) CloseDetail() {
	s.DetailRow = nil
}

// InDetail reports whether the row detail overlay is open
func (s *NavState) InDetail() bool {
	return s.DetailRow != nil
}

func saturatingSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

// trimLastRune removes the final rune from an input buffer, not the
// final byte, so multi-byte input backspaces cleanly
func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
