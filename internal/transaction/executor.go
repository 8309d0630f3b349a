package transaction

import "sync"

// Executor runs completion callbacks. Implementations decide which goroutine
// a caller's handler resumes on.
type Executor interface {
	Execute(job func())
}

type ExecutorFunc func(job func())

func (f ExecutorFunc) Execute(job func()) { f(job) }

// SerialExecutor runs jobs one at a time, in submission order, on a single
// drain goroutine that exists only while jobs are queued. Execute never blocks.
type SerialExecutor struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

func NewSerialExecutor() *SerialExecutor {
	return &SerialExecutor{}
}

func (e *SerialExecutor) Execute(job func()) {
	if job == nil {
		return
	}

	e.mu.Lock()
	e.queue = append(e.queue, job)
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	go e.drain()
}

func (e *SerialExecutor) drain() {
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.running = false
			e.mu.Unlock()
			return
		}
		job := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mu.Unlock()

		job()
	}
}
