// Package ui draws maps onto a tcell terminal screen.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen is the terminal a viewer draws on. Close may be called from any
// goroutine and more than once; it also wakes a blocked PollEvent.
type Screen struct {
	tty       tcell.Screen
	closeOnce sync.Once
}

// NewScreen opens the controlling terminal.
func NewScreen() (*Screen, error) {
	tty, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(tty)
}

// NewScreenFrom takes over tty, typically a simulation screen in tests.
func NewScreenFrom(tty tcell.Screen) (*Screen, error) {
	if err := tty.Init(); err != nil {
		return nil, err
	}
	tty.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	tty.Clear()
	return &Screen{tty: tty}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.closeOnce.Do(s.tty.Fini)
}

// PollEvent blocks for the next event. It returns nil once the screen is closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.tty.PollEvent()
}

func (s *Screen) Clear() { s.tty.Clear() }

func (s *Screen) Show() { s.tty.Show() }

// Sync redraws everything, used after a resize.
func (s *Screen) Sync() { s.tty.Sync() }

// SetContent puts r at (x, y).
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.tty.SetContent(x, y, r, nil, style)
}
