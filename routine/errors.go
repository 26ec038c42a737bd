package routine

import "fmt"

// ErrPanicRecovered is the sentinel for a recovered goroutine panic.
var ErrPanicRecovered = fmt.Errorf("routine: panic recovered")

// ErrPanic wraps the recovered panic value in an error.
func ErrPanic(recovered any) error {
	return fmt.Errorf("routine: panic recovered: %v", recovered)
}
