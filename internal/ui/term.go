package ui

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether f refers to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TermWidth returns the width of the terminal behind f in columns, or 80.
func TermWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
