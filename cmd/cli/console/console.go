package console

import "io"

// Console carries the output streams commands write to, so tests can
// capture them.
type Console struct {
	Stdout io.Writer
	Stderr io.Writer
}
