package manager

import (
	"testing"
)

func TestExecutorRunsInOrder(t *testing.T) {
	e := newExecutor()
	e.start()
	defer e.stop()

	var got []int
	done := make(chan struct{})
	for i := 1; i <= 5; i++ {
		i := i
		e.call(func() {
			got = append(got, i)
			if i == 5 {
				close(done)
			}
		})
	}
	await(t, done, "last job")

	for i, v := range got {
		if v != i+1 {
			t.Fatalf("jobs ran out of order: %v", got)
		}
	}
}

func TestExecutorStopDrainsQueuedJobs(t *testing.T) {
	e := newExecutor()
	e.start()

	ran := make(chan struct{})
	e.call(func() { close(ran) })
	e.stop()

	await(t, ran, "job queued before stop")
}

func TestExecutorRecoversFromPanic(t *testing.T) {
	e := newExecutor()
	e.start()
	defer e.stop()

	survived := make(chan struct{})
	e.call(func() { panic("callback bug") })
	e.call(func() { close(survived) })

	await(t, survived, "job after panicking job")
}

func TestExecutorRestart(t *testing.T) {
	e := newExecutor()
	e.start()
	e.stop()

	// Jobs enqueued while stopped run once restarted.
	ran := make(chan struct{})
	e.call(func() { close(ran) })
	e.start()
	defer e.stop()

	await(t, ran, "job after restart")
}

func TestExecutorNilJobIgnored(t *testing.T) {
	e := newExecutor()
	e.start()
	defer e.stop()

	// A nil job must not be mistaken for the stop sentinel.
	e.call(nil)
	ran := make(chan struct{})
	e.call(func() { close(ran) })
	await(t, ran, "job after nil call")
}

func TestExecutorStartIdempotent(t *testing.T) {
	e := newExecutor()
	e.start()
	e.start()
	defer e.stop()

	ran := make(chan struct{})
	e.call(func() { close(ran) })
	await(t, ran, "job with doubled start")
}
