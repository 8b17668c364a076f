// Package clipboard defines the bridge the input engine uses for copy,
// cut, and paste. The bridge is fire-and-forget: the engine never blocks
// on it, and reads deliver their result through a callback that may run
// after the triggering key event has already returned. Failures are
// swallowed by the engine and degrade to empty results.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Bridge is the external clipboard collaborator.
type Bridge interface {
	// WriteText places text on the clipboard. The caller ignores the
	// error; a failed copy is not a user-visible fault.
	WriteText(text string) error

	// ReadText fetches the clipboard text and hands it to deliver.
	// Implementations decide when deliver runs, but must run it on the
	// same goroutine that drives key events so edits never interleave.
	ReadText(deliver func(text string, err error))
}

// System is a Bridge backed by the OS clipboard. Delivery is synchronous:
// the callback runs before ReadText returns, which satisfies the
// single-threaded sequencing requirement trivially.
type System struct{}

// NewSystem returns the OS clipboard bridge.
func NewSystem() *System {
	return &System{}
}

func (*System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

func (*System) ReadText(deliver func(text string, err error)) {
	text, err := clipboard.ReadAll()
	deliver(text, err)
}
