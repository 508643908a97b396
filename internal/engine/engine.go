package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/clixmods/trophies/internal/catalog"
	"github.com/clixmods/trophies/internal/storage"
)

const (
	defaultRecheckInterval = 30 * time.Second
	defaultNotifyStagger   = 800 * time.Millisecond
	defaultHomePath        = "/"

	unlockDateLayout = "January 2, 2006"

	notifyKindTrophy      = "trophy"
	notifyKindCelebration = "celebration"

	unlockTitle        = "Trophy unlocked!"
	unlockDuration     = 5 * time.Second
	celebrationMessage = "You unlocked every trophy on this site!"
	vibrateDuration    = 200 * time.Millisecond
)

// Options tunes an Engine. Zero values fall back to sensible defaults.
type Options struct {
	Locale   string
	HomePath string
	// RecheckInterval is how often the background pass re-evaluates.
	// Negative disables it.
	RecheckInterval time.Duration
	NotifyStagger   time.Duration

	// Clock and Schedule are test seams.
	Clock    func() time.Time
	Schedule Scheduler

	Haptics Haptics
}

func (o Options) withDefaults() Options {
	if o.Locale == "" {
		o.Locale = "en"
	}
	if o.HomePath == "" {
		o.HomePath = defaultHomePath
	}
	if o.RecheckInterval == 0 {
		o.RecheckInterval = defaultRecheckInterval
	}
	if o.NotifyStagger == 0 {
		o.NotifyStagger = defaultNotifyStagger
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Engine owns the trophy catalog, evaluates conditions against persisted
// browsing signals, and dispatches unlock notifications. All exported methods
// are safe for concurrent use.
type Engine struct {
	kv     *storage.KV
	loader *catalog.Loader
	queue  *notifyQueue
	logger *zap.Logger
	opts   Options

	mu          sync.Mutex
	defs        []catalog.Definition
	unlocked    []string
	currentPath string
}

func New(store storage.Store, loader *catalog.Loader, presenter Presenter, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()
	return &Engine{
		kv:     storage.NewKV(store, logger),
		loader: loader,
		queue:  newNotifyQueue(presenter, opts.Schedule),
		logger: logger,
		opts:   opts,
	}
}

// Load fetches the catalog and the persisted unlock state without touching
// any counter. It never fails: an unreachable catalog source degrades to the
// embedded fallback.
func (e *Engine) Load(ctx context.Context) {
	defs := e.loader.Load(ctx, e.opts.Locale)

	e.mu.Lock()
	e.defs = defs
	e.unlocked = e.kv.Strings(storage.KeyUnlocked)
	e.mu.Unlock()
}

// Init loads the catalog, records the entry-page visit and runs a first
// evaluation pass. When RecheckInterval is positive a background pass re-runs
// until ctx is cancelled, catching time-based conditions that ripen without
// any user action.
func (e *Engine) Init(ctx context.Context, path string) {
	e.Load(ctx)
	e.RecordVisit(path)
	e.Evaluate()

	if e.opts.RecheckInterval > 0 {
		go e.recheckLoop(ctx)
	}
}

func (e *Engine) recheckLoop(ctx context.Context) {
	ticker := time.NewTicker(e.opts.RecheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Evaluate()
		}
	}
}

// Evaluate runs one pass over every locked trophy and returns how many were
// unlocked. Each fresh unlock queues exactly one notification; a trophy that
// is already unlocked is never re-notified.
func (e *Engine) Evaluate() int {
	e.mu.Lock()
	snap := e.snapshotLocked()

	var fresh []catalog.Definition
	for _, def := range e.defs {
		if lo.Contains(e.unlocked, def.ID) {
			continue
		}
		if !Satisfied(def, snap, e.logger) {
			continue
		}
		if e.unlockLocked(def) {
			fresh = append(fresh, def)
			// meta conditions in the same pass see this unlock
			snap.Counters.Unlocked = append([]string(nil), e.unlocked...)
		}
	}
	completed := e.completionRipeLocked()
	e.mu.Unlock()

	for i, def := range fresh {
		e.notifyUnlock(def, time.Duration(i)*e.opts.NotifyStagger)
	}
	if completed {
		e.notifyCompletion(time.Duration(len(fresh)) * e.opts.NotifyStagger)
	}
	return len(fresh)
}

// unlockLocked adds the trophy to the unlocked set and stamps its unlock
// date, once. Returns false when the trophy was already unlocked. A failed
// persistence write still unlocks for the session; the KV layer logs it.
func (e *Engine) unlockLocked(def catalog.Definition) bool {
	if lo.Contains(e.unlocked, def.ID) {
		return false
	}
	e.unlocked = append(append([]string(nil), e.unlocked...), def.ID)
	e.kv.SetStrings(storage.KeyUnlocked, e.unlocked)

	dateKey := storage.UnlockDateKey(def.ID)
	if _, ok := e.kv.String(dateKey); !ok {
		e.kv.SetString(dateKey, e.opts.Clock().Format(unlockDateLayout))
	}
	e.logger.Info("trophy unlocked",
		zap.String("trophy", def.ID),
		zap.String("rarity", string(def.Rarity)),
	)
	return true
}

// completionRipeLocked reports whether the 100% milestone fired on this pass.
// The persisted marker makes it one-shot across the whole storage lifetime.
func (e *Engine) completionRipeLocked() bool {
	count, total, _ := e.progressLocked()
	if total == 0 || count < total {
		return false
	}
	if e.kv.Bool(storage.KeyCompletionShown) {
		return false
	}
	e.kv.MarkTrue(storage.KeyCompletionShown)
	return true
}

func (e *Engine) notifyUnlock(def catalog.Definition, delay time.Duration) {
	e.queue.enqueue(notification{
		message: def.Name,
		kind:    notifyKindTrophy,
		opts: PresentOptions{
			Title:    unlockTitle,
			Avatar:   def.Icon,
			Duration: unlockDuration,
		},
	}, delay)
	if e.opts.Haptics != nil {
		e.opts.Haptics.Vibrate(vibrateDuration)
	}
}

func (e *Engine) notifyCompletion(delay time.Duration) {
	e.queue.enqueue(notification{
		message: celebrationMessage,
		kind:    notifyKindCelebration,
		opts:    PresentOptions{Duration: unlockDuration},
	}, delay)
	if e.opts.Haptics != nil {
		e.opts.Haptics.Vibrate(vibrateDuration)
	}
}

func (e *Engine) snapshotLocked() EvalContext {
	actions := map[string]bool{
		storage.KeyScrolledBottom:   e.kv.Bool(storage.KeyScrolledBottom),
		storage.KeySkillModalOpened: e.kv.Bool(storage.KeySkillModalOpened),
	}
	for _, def := range e.defs {
		if ap, ok := def.Condition.(catalog.ActionPerformed); ok && ap.Action != "" {
			actions[ap.Action] = e.kv.Bool(ap.Action)
		}
	}
	start, _ := e.kv.Millis(storage.KeyVisitStartTime)
	return EvalContext{
		Path: e.currentPath,
		Now:  e.opts.Clock(),
		Counters: Counters{
			Sets: map[string][]string{
				storage.KeyVisitedSections: e.kv.Strings(storage.KeyVisitedSections),
				storage.KeyVisitedProjects: e.kv.Strings(storage.KeyVisitedProjects),
				storage.KeySocialClicks:    e.kv.Strings(storage.KeySocialClicks),
			},
			Actions:          actions,
			SpeedNav:         e.kv.SpeedNav(),
			VisitStartMillis: start,
			Unlocked:         append([]string(nil), e.unlocked...),
			EnabledIDs:       catalog.IDs(e.defs),
		},
	}
}

// Progress returns the unlocked count, the enabled total and the completion
// ratio in [0, 1]. Unlocked IDs that no longer exist in the catalog do not
// count.
func (e *Engine) Progress() (unlocked, total int, ratio float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked()
}

func (e *Engine) progressLocked() (int, int, float64) {
	ids := catalog.IDs(e.defs)
	if len(ids) == 0 {
		return 0, 0, 0
	}
	count := lo.CountBy(ids, func(id string) bool {
		return lo.Contains(e.unlocked, id)
	})
	return count, len(ids), float64(count) / float64(len(ids))
}

// ForceUnlock bypasses the condition check for the named trophy. The
// duplicate guard still applies, so forcing an unlocked trophy is a no-op.
func (e *Engine) ForceUnlock(id string) (bool, error) {
	e.mu.Lock()
	def, ok := lo.Find(e.defs, func(d catalog.Definition) bool { return d.ID == id })
	if !ok {
		e.mu.Unlock()
		return false, fmt.Errorf("unknown trophy %q", id)
	}
	freshUnlock := e.unlockLocked(def)
	completed := freshUnlock && e.completionRipeLocked()
	e.mu.Unlock()

	if freshUnlock {
		e.notifyUnlock(def, 0)
	}
	if completed {
		e.notifyCompletion(e.opts.NotifyStagger)
	}
	return freshUnlock, nil
}

// Status pairs a catalog entry with its unlock state.
type Status struct {
	catalog.Definition
	Unlocked   bool
	UnlockedAt string
}

// List returns every enabled trophy in display order with its unlock state
// and, when unlocked, the stored unlock date.
func (e *Engine) List() []Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return lo.Map(e.defs, func(def catalog.Definition, _ int) Status {
		s := Status{Definition: def}
		if lo.Contains(e.unlocked, def.ID) {
			s.Unlocked = true
			s.UnlockedAt, _ = e.kv.String(storage.UnlockDateKey(def.ID))
		}
		return s
	})
}

// ResetAll wipes every persisted trophy key: unlocks, dates, counters and
// markers. The loaded catalog stays in place.
func (e *Engine) ResetAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.kv.Raw().Reset(); err != nil {
		return err
	}
	e.unlocked = nil
	return nil
}
