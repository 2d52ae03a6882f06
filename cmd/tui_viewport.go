package cmd

// scrollIntoView returns the scroll offset that keeps the given
// selection inside a window of visible rows over total rows. If the
// selection is above the window it becomes the new top; if it is at or
// below the bottom edge the window shifts so the selection sits on the
// last visible row; otherwise the offset is unchanged. The result is
// always clamped to [0, total-visible], so the window never shows
// blank space past the end. A list that fits entirely never scrolls.
func scrollIntoView(selection, scroll, visible, total int) int {
	if total <= 0 || visible <= 0 {
		return 0
	}
	if visible >= total {
		return 0
	}
	if selection < scroll {
		scroll = selection
	} else if selection >= scroll+visible {
		scroll = selection - visible + 1
	}
	if max := total - visible; scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}
