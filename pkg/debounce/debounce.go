// Package debounce provides a trailing-edge debouncer for coalescing bursts
// of events, such as scroll samples, into a single callback.
package debounce

import (
	"sync"
	"time"
)

// Debounce returns a function that delays invoking fn until d has elapsed
// since the last call. Only the trailing call fires; earlier pending calls
// are cancelled.
func Debounce(d time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, fn)
	}
}
