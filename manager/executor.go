package manager

import (
	"slices"
	"sync"

	"winkeys/log"
)

// executor runs hotkey callbacks on a dedicated goroutine, in the
// order their key events were matched. Callbacks routinely call back
// into the manager (register, pause, steal); running them on the
// decision goroutine could deadlock it against the registry mutex it
// needs for the next event, so they are always handed off here.
//
// The queue is unbounded: enqueueing from the decision goroutine must
// never block.
type executor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func() // nil entry is the stop sentinel
	running bool
}

func newExecutor() *executor {
	e := &executor{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// start launches the worker if it is not already running. A stop the
// worker has not consumed yet is cancelled, so stop-then-start never
// strands queued callbacks.
func (e *executor) start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.queue = slices.DeleteFunc(e.queue, func(job func()) bool { return job == nil })
		return
	}
	e.running = true
	go e.run()
}

func (e *executor) run() {
	for {
		e.mu.Lock()
		for len(e.queue) == 0 {
			e.cond.Wait()
		}
		job := e.queue[0]
		e.queue = e.queue[1:]
		if job == nil {
			e.running = false
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()
		invoke(job)
	}
}

func invoke(job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("hotkey callback panicked: %v", r)
		}
	}()
	job()
}

// call enqueues a callback. Never blocks.
func (e *executor) call(job func()) {
	if job == nil {
		return
	}
	e.mu.Lock()
	e.queue = append(e.queue, job)
	e.mu.Unlock()
	e.cond.Signal()
}

// stop enqueues the stop sentinel; callbacks queued before it still
// run. A stopped executor ignores stop.
func (e *executor) stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.queue = append(e.queue, nil)
	e.mu.Unlock()
	e.cond.Signal()
}
