package main

import (
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/flood-escape/internal/core"
)

// terminalSize reports the size of stdout, falling back to the default
// runtime screen size.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	width, height := def.ScreenW, def.ScreenH
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
