package ui

import "github.com/five82/uetail/internal/view"

// Screen rows outside the log body.
const (
	headerRows = 1
	footerRows = 1
)

// headerLeftPercent is the share of the header given to the target name.
// The rest holds the cook gauge or the filter label.
const headerLeftPercent = 70

// Scroll steps.
const (
	pageStep  = 10
	wheelStep = 3
)

// bodyViewport returns the bordered log body rectangle for a terminal of
// the given size.
func bodyViewport(width, height int) view.Viewport {
	return view.Viewport{
		X:      0,
		Y:      headerRows,
		Width:  max(width, 2),
		Height: max(height-headerRows-footerRows, 2),
	}
}

// splitHeader returns the widths of the left and right header columns.
func splitHeader(width int) (left, right int) {
	left = width * headerLeftPercent / 100
	return left, width - left
}
