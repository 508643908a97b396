package engine

import (
	"sync"
	"time"
)

// PresentOptions carries the optional decoration for a notification.
type PresentOptions struct {
	Title    string
	Avatar   string
	Duration time.Duration
}

// Presenter displays notifications to the visitor. Kind is "trophy" for an
// unlock and "celebration" for the completion milestone.
type Presenter interface {
	Present(message string, kind string, opts PresentOptions)
}

// Haptics triggers a vibration where the device supports it. Implementations
// that cannot vibrate should just return.
type Haptics interface {
	Vibrate(d time.Duration)
}

// Scheduler runs fn after delay. The default wraps time.AfterFunc; tests
// inject a synchronous one.
type Scheduler func(delay time.Duration, fn func())

func defaultScheduler(delay time.Duration, fn func()) {
	if delay <= 0 {
		fn()
		return
	}
	time.AfterFunc(delay, fn)
}

type notification struct {
	message string
	kind    string
	opts    PresentOptions
}

// notifyQueue holds pending notifications and drains one per scheduled
// callback, so a burst of unlocks arrives staggered instead of stacked.
type notifyQueue struct {
	mu        sync.Mutex
	pending   []notification
	presenter Presenter
	schedule  Scheduler
}

func newNotifyQueue(presenter Presenter, schedule Scheduler) *notifyQueue {
	if schedule == nil {
		schedule = defaultScheduler
	}
	return &notifyQueue{presenter: presenter, schedule: schedule}
}

func (q *notifyQueue) enqueue(n notification, delay time.Duration) {
	q.mu.Lock()
	q.pending = append(q.pending, n)
	q.mu.Unlock()
	q.schedule(delay, q.drainOne)
}

func (q *notifyQueue) drainOne() {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}
	n := q.pending[0]
	q.pending = q.pending[1:]
	q.mu.Unlock()

	if q.presenter != nil {
		q.presenter.Present(n.message, n.kind, n.opts)
	}
}
