package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clixmods/trophies/internal/catalog"
	"github.com/clixmods/trophies/internal/storage"
)

func TestNotifyQueueDrainsInOrder(t *testing.T) {
	presenter := &recordingPresenter{}

	var scheduled []func()
	queue := newNotifyQueue(presenter, func(_ time.Duration, fn func()) {
		scheduled = append(scheduled, fn)
	})

	queue.enqueue(notification{message: "one", kind: notifyKindTrophy}, 0)
	queue.enqueue(notification{message: "two", kind: notifyKindTrophy}, time.Second)
	require.Zero(t, presenter.count(), "nothing shows before the scheduler fires")

	for _, fn := range scheduled {
		fn()
	}
	require.Equal(t, 2, presenter.count())
	assert.Equal(t, "one", presenter.shown[0].message)
	assert.Equal(t, "two", presenter.shown[1].message)
}

func TestNotifyQueueSpuriousDrain(t *testing.T) {
	presenter := &recordingPresenter{}
	queue := newNotifyQueue(presenter, syncSchedule)

	queue.drainOne()
	assert.Zero(t, presenter.count())
}

func TestNotifyQueueNilPresenter(t *testing.T) {
	queue := newNotifyQueue(nil, syncSchedule)
	assert.NotPanics(t, func() {
		queue.enqueue(notification{message: "quiet"}, 0)
	})
}

type countingHaptics struct{ calls int }

func (h *countingHaptics) Vibrate(time.Duration) { h.calls++ }

func TestUnlockTriggersHaptics(t *testing.T) {
	presenter := &recordingPresenter{}
	haptics := &countingHaptics{}

	eng := New(storage.NewMemory(), catalog.NewLoader(nil, zap.NewNop()), presenter, nil, Options{
		RecheckInterval: -1,
		Schedule:        syncSchedule,
		Haptics:         haptics,
	})
	defs, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	eng.defs = defs

	eng.RecordVisit("/posts/hello/")
	eng.Evaluate()
	assert.Equal(t, 1, haptics.calls)
}
