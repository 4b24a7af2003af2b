package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/gamemove/oerror"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for {
		f, ok := <-workerQueue
		if !ok {
			return
		}
		run(f)
	}
}

func run(f func()) {
	defer func() {
		if v := recover(); v != nil {
			sentry.CurrentHub().Recover(oerror.New("worker job panicked: %v", v))
		}
	}()
	f()
}

// Submit queues f to run on one of the workers. A panic in f is reported to sentry.
func Submit(f func()) {
	workerQueue <- f
}

// Run runs every function in fs on the workers and waits for all of them to return. A panic in one
// of the functions is reported to sentry and returned as an error instead of killing the worker.
func Run(fs ...func()) error {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	wg.Add(len(fs))
	for i, f := range fs {
		Submit(func() {
			defer wg.Done()
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				err := oerror.New("job %d panicked: %v", i, v)
				sentry.CurrentHub().Recover(err)

				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}()
			f()
		})
	}
	wg.Wait()
	return first
}
