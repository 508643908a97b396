package engine

import (
	"time"

	"github.com/clixmods/trophies/internal/storage"
)

// Counters is a read-only snapshot of the persisted browsing signals a
// condition may consume.
type Counters struct {
	// Sets holds the deduplicated string sets, keyed by storage key
	// (visitedSections, visitedProjects, socialClicks).
	Sets map[string][]string
	// Actions holds the boolean markers, keyed by storage key.
	Actions map[string]bool
	// SpeedNav is the page-count/start-time record.
	SpeedNav storage.SpeedNav
	// VisitStartMillis is when the visitor first arrived, 0 if unknown.
	VisitStartMillis int64
	// Unlocked is the current unlocked-trophy ID set.
	Unlocked []string
	// EnabledIDs is the universe of enabled trophy IDs.
	EnabledIDs []string
}

// EvalContext carries everything a condition evaluation may read, so every
// evaluator is a pure function of its inputs.
type EvalContext struct {
	Path     string
	Now      time.Time
	Counters Counters
}
