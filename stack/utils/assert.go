package utils

import "fmt"

// Assert panics when condition is false. It guards internal invariants that
// can only break through a programming error, never through caller input.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}

// Assertf is Assert with a formatted message. The message is only built on
// failure.
func Assertf(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Sprintf(format, args...))
	}
}
