// Package render draws the flock into a terminal cell grid.
// It only reads simulation state; nothing here feeds back into steering.
package render

import "github.com/gdamore/tcell/v2"

// Screen is the subset of tcell.Screen the renderer draws through
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Fill(r rune, style tcell.Style)
	Show()
}

var _ Screen = tcell.Screen(nil)
