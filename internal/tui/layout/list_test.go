package layout

import "testing"

func TestCalculateListHeight(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"standard terminal", 24, 15},
		{"short terminal clamps", 10, 3},
		{"zero height", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateListHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculateListHeight(%d) = %d, want %d", tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculateColumns(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		name     string
		width    int
		showPath bool
		wantName int
		wantPath int
	}{
		{"names only", 80, false, 72, 0},
		{"names and paths", 80, true, 31, 39}, // 72*55/100=39, 72-39-2=31
		{"narrow keeps name width", 20, true, 12, 0},
		{"tiny terminal", 10, false, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, path := CalculateColumns(tt.width, tt.showPath, cfg)
			if name != tt.wantName || path != tt.wantPath {
				t.Errorf("CalculateColumns(%d, %v) = (%d, %d), want (%d, %d)",
					tt.width, tt.showPath, name, path, tt.wantName, tt.wantPath)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name                    string
		selected, total, height int
		want                    int
	}{
		{"everything fits", 2, 3, 5, 0},
		{"top of list", 0, 10, 5, 0},
		{"middle centers selection", 5, 10, 5, 3},
		{"bottom clamps", 9, 10, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.height)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.height, got, tt.want)
			}
		})
	}
}
