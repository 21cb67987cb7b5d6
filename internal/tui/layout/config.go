package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds list pane dimension configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list content.
	// Accounts for: app padding (1) + title (1) + status (1) + candidate (1) + pane borders (2) + help bar (3) = 9
	HeightReduction int

	// MinHeight is the minimum list height.
	MinHeight int

	// ContentPadding is subtracted from the terminal width for row rendering.
	// Accounts for app padding, pane border and pane padding on each side.
	ContentPadding int

	// PathColumnPercent is the share of the row given to the path column
	// when paths are shown.
	PathColumnPercent int

	// MinNameWidth keeps names readable on narrow terminals.
	MinNameWidth int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpColumnWidth: width of each help overlay column.
	HelpColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	NameCharLimit   int
	FilterCharLimit int

	StandardWidth int // name input
	FilterWidth   int // filter input (narrower)
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction:   9,
			MinHeight:         3,
			ContentPadding:    8,
			PathColumnPercent: 55,
			MinNameWidth:      12,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            40,
			MaxWidth:            80,
			HelpColumnWidth:     24,
		},
		Input: InputConfig{
			NameCharLimit:   100,
			FilterCharLimit: 50,
			StandardWidth:   40,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
