package sched

import "fmt"

// ErrNilTask is returned when AddTask is called without a task.
var ErrNilTask = fmt.Errorf("sched: nil task")

// ErrInvalidSpec reports a cron spec the parser rejected.
func ErrInvalidSpec(task, spec string, err error) error {
	return fmt.Errorf("sched: invalid spec %q for task %s: %w", spec, task, err)
}
