package layout

// CalculateListHeight computes the number of rows the list can show.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateColumns splits the row width between name and path. When paths
// are hidden the name gets the whole row.
func CalculateColumns(terminalWidth int, showPath bool, cfg ListConfig) (nameWidth, pathWidth int) {
	row := terminalWidth - cfg.ContentPadding
	if row < cfg.MinNameWidth {
		row = cfg.MinNameWidth
	}
	if !showPath {
		return row, 0
	}

	pathWidth = row * cfg.PathColumnPercent / 100
	nameWidth = row - pathWidth - 2 // gap between columns
	if nameWidth < cfg.MinNameWidth {
		nameWidth = cfg.MinNameWidth
		pathWidth = max(row-nameWidth-2, 0)
	}
	return nameWidth, pathWidth
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
