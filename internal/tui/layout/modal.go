package layout

// CalculateModalWidth returns widthPercent of the terminal width, clamped to
// the configured bounds and kept 4 columns inside the terminal.
func CalculateModalWidth(terminalWidth, widthPercent int, cfg ModalConfig) int {
	width := min(max(terminalWidth*widthPercent/100, cfg.MinWidth), cfg.MaxWidth)
	return max(min(width, terminalWidth-4), 1)
}
