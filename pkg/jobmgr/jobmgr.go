// Package jobmgr runs named long-lived jobs, such as chat transports, under a
// shared parent context and reports their lifecycle.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(func(e jobmgr.Event) {
//	    log.Println("JOB:", e)
//	})
//
//	_ = jm.Start(ctx, "discord", bot.Run)
//	_ = jm.Start(ctx, "telegram", tg.Run)
//
//	err := jm.Wait()
//
// Jobs are removed once they return. There is no restart logic.
package jobmgr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrRunning    = errors.New("job is already running")
	ErrNotRunning = errors.New("job is not running")
)

// State is a lifecycle step of a job.
type State int

const (
	Running State = iota
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event is delivered to the reporter on every state change.
type Event struct {
	Job   string
	State State
	Err   error
}

// String renders events as "running:discord" or "error:discord:<err>".
func (e Event) String() string {
	if e.Err != nil {
		return e.State.String() + ":" + e.Job + ":" + e.Err.Error()
	}
	return e.State.String() + ":" + e.Job
}

// Reporter receives lifecycle events. It is called from job goroutines.
type Reporter func(Event)

// Manager starts, stops and tracks jobs. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]context.CancelFunc
	errs     []error
	wg       sync.WaitGroup
	reporter Reporter
}

// NewManager creates a manager. The reporter may be nil.
func NewManager(reporter Reporter) *Manager {
	return &Manager{
		jobs:     make(map[string]context.CancelFunc),
		reporter: reporter,
	}
}

// Start runs runner in its own goroutine with a context derived from ctx.
func (m *Manager) Start(ctx context.Context, name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRunning, name)
	}
	jctx, cancel := context.WithCancel(ctx)
	m.jobs[name] = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()

		m.report(Event{Job: name, State: Running})
		err := runner(jctx)

		m.mu.Lock()
		delete(m.jobs, name)
		if err != nil {
			m.errs = append(m.errs, fmt.Errorf("%s: %w", name, err))
		}
		m.mu.Unlock()

		if err != nil {
			m.report(Event{Job: name, State: Failed, Err: err})
		} else {
			m.report(Event{Job: name, State: Done})
		}
	}()
	return nil
}

// Stop cancels a running job. The job is removed once its runner returns.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cancel, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRunning, name)
	}
	cancel()
	return nil
}

// Wait blocks until every started job has returned and joins their errors.
func (m *Manager) Wait() error {
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}

// List returns the names of running jobs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Status returns a human-readable summary such as "Running jobs: discord, telegram".
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

func (m *Manager) report(e Event) {
	if m.reporter != nil {
		m.reporter(e)
	}
}
