package kernel

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// PanicInfo describes a task panic recovered by the kernel.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

func (p PanicInfo) String() string {
	return fmt.Sprintf("task %d: %v", p.TaskID, p.Value)
}

// The first task panic is latched; the screen keeps showing it and later
// panics are only counted.
var panics struct {
	mu      sync.Mutex
	handler func(PanicInfo)
	first   *PanicInfo
	later   int
}

// InPanicMode reports whether any task has panicked.
func InPanicMode() bool {
	panics.mu.Lock()
	defer panics.mu.Unlock()
	return panics.first != nil
}

// FirstPanic returns the latched panic and how many panics followed it.
func FirstPanic() (info PanicInfo, later int, ok bool) {
	panics.mu.Lock()
	defer panics.mu.Unlock()
	if panics.first == nil {
		return PanicInfo{}, 0, false
	}
	return *panics.first, panics.later, true
}

// SetPanicHandler installs the process-wide handler run for the first panic.
// A handler that panics itself is recovered and ignored.
func SetPanicHandler(fn func(PanicInfo)) {
	panics.mu.Lock()
	panics.handler = fn
	panics.mu.Unlock()
}

func triggerPanic(info PanicInfo) {
	info.Stack = debug.Stack()

	panics.mu.Lock()
	if panics.first != nil {
		panics.later++
		panics.mu.Unlock()
		return
	}
	panics.first = &info
	fn := panics.handler
	panics.mu.Unlock()

	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(info)
}
