package kernel

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
)

// PanicInfo describes the first task panic the kernel recovered.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// Lines renders the panic as short display lines, stack frames trimmed.
func (p PanicInfo) Lines() []string {
	lines := []string{
		"Watch panic:",
		fmt.Sprintf("task: %d", p.TaskID),
		fmt.Sprintf("panic: %v", p.Value),
	}
	if len(p.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, frame := range strings.Split(string(p.Stack), "\n") {
		if frame = strings.TrimSpace(frame); frame != "" {
			lines = append(lines, frame)
		}
	}
	return lines
}

var (
	panicked     atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Pointer[func(PanicInfo)]
)

// InPanicMode reports whether any task has panicked.
func InPanicMode() bool {
	return panicked.Load()
}

// SetPanicHandler sets the process-wide hook run on the first task panic.
// Later panics are swallowed. fn must not panic itself.
func SetPanicHandler(fn func(PanicInfo)) {
	if fn == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicked.Store(true)
		info.Stack = debug.Stack()
		if fn := panicHandler.Load(); fn != nil {
			(*fn)(info)
		}
	})
}
