package main

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// deriveSpinner shows a spinner on stderr while the key is derived.
// Nothing is shown in verbose mode or when stderr is not a terminal.
func deriveSpinner() func() {
	if verbose || !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Deriving key from password..."
	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")
	s.Start()

	return s.Stop
}
