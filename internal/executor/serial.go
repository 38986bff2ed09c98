package executor

import "fmt"

// Serial runs every task on the calling goroutine in submission order.
type Serial struct{}

// NewSerial creates a serial executor.
func NewSerial() *Serial {
	return &Serial{}
}

// SubmitAndWait runs the tasks one by one. The whole batch is executed
// even when a task panics; the first panic is returned as an error.
func (s *Serial) SubmitAndWait(tasks []Task) error {
	var firstErr error
	for _, task := range tasks {
		if err := runTask(task); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// runTask executes a task, converting a panic into an error.
func runTask(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	task()
	return nil
}
