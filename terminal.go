package askcii

import (
	"fmt"
	"io"
)

// Terminal controls the cursor of the display that animated art is drawn on.
type Terminal interface {
	ResetCursor(rows int)
	ShowCursor(show bool)
}

// Xterm drives a terminal that understands xterm escape sequences.
type Xterm struct {
	Writer io.Writer
}

// ResetCursor moves the cursor to the start of the line, then up rows lines.
func (term *Xterm) ResetCursor(rows int) {
	fmt.Fprintf(term.Writer, "\033[999D\033[%dA", rows)
}

// ShowCursor shows or hides the cursor.
func (term *Xterm) ShowCursor(show bool) {
	if show {
		io.WriteString(term.Writer, "\033[?12l\033[?25h")
	} else {
		io.WriteString(term.Writer, "\033[?25l")
	}
}

// FitScale returns the factor that shrinks a width x height image to fit in
// cols x (lines-1) glyphs, leaving one line for the prompt. Images are never
// enlarged.
func FitScale(width, height, cols, lines int) float64 {
	if width <= 0 || height <= 0 || cols <= 0 || lines <= 1 {
		return 1
	}
	scaleX := float64(cols) / float64(width)
	scaleY := float64(lines-1) / float64(height)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale > 1 {
		return 1
	}
	return scale
}
