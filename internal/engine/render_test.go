package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clixmods/trophies/internal/catalog"
)

func TestRenderList(t *testing.T) {
	statuses := []Status{
		{
			Definition: catalog.Definition{
				ID: "first_post", Name: "First Post", Icon: "📖",
				Rarity: catalog.RarityCommon, Description: "Read a blog post",
			},
			Unlocked:   true,
			UnlockedAt: time.Now().AddDate(0, 0, -3).Format(unlockDateLayout),
		},
		{
			Definition: catalog.Definition{
				ID: "completionist", Name: "Completionist", Icon: "💯",
				Rarity: catalog.RarityLegendary, Requirement: "Unlock every trophy",
			},
		},
	}

	out := RenderList(statuses, 1, 2, 0.5)
	assert.Contains(t, out, "First Post")
	assert.Contains(t, out, "Read a blog post")
	assert.Contains(t, out, "unlocked ")
	assert.Contains(t, out, "Completionist")
	assert.Contains(t, out, "Unlock every trophy")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "50%")
}

func TestRenderStats(t *testing.T) {
	statuses := []Status{
		{Definition: catalog.Definition{ID: "a", Rarity: catalog.RarityCommon}, Unlocked: true},
		{Definition: catalog.Definition{ID: "b", Rarity: catalog.RarityCommon}},
		{Definition: catalog.Definition{ID: "c", Rarity: catalog.RarityLegendary}},
	}

	out := RenderStats(statuses, 1, 3, 1.0/3)
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "common")
	assert.Contains(t, out, "legendary")
	assert.NotContains(t, out, "epic", "absent rarities are omitted")
}

func TestRenderProgressBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), renderProgressBar(0, 10))
	assert.Equal(t, strings.Repeat("█", 10), renderProgressBar(1, 10))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5), renderProgressBar(0.5, 10))
	assert.Equal(t, strings.Repeat("█", 10), renderProgressBar(3, 10), "clamped")
	assert.Equal(t, strings.Repeat("░", 10), renderProgressBar(-1, 10), "clamped")
}

func TestRelativeUnlockDate(t *testing.T) {
	assert.Empty(t, relativeUnlockDate(""))
	assert.Equal(t, "not a date", relativeUnlockDate("not a date"))
	assert.NotEmpty(t, relativeUnlockDate(time.Now().Format(unlockDateLayout)))
}
