package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerBasicOperations(t *testing.T) {
	manager, err := NewManager(":memory:")
	assert.NoError(t, err, "Failed to create storage manager")
	defer manager.Close()

	_, ok := manager.Get("missing")
	assert.False(t, ok, "Expected missing key to report absence")

	err = manager.Set("visitedSections", `["home"]`)
	assert.NoError(t, err)

	value, ok := manager.Get("visitedSections")
	assert.True(t, ok)
	assert.Equal(t, `["home"]`, value)

	// Overwrite keeps a single row per key
	err = manager.Set("visitedSections", `["home","skills"]`)
	assert.NoError(t, err)

	value, ok = manager.Get("visitedSections")
	assert.True(t, ok)
	assert.Equal(t, `["home","skills"]`, value)

	keys, err := manager.Keys()
	assert.NoError(t, err)
	assert.Equal(t, []string{"visitedSections"}, keys)
}

func TestManagerDeleteAndReset(t *testing.T) {
	manager, err := NewManager(":memory:")
	assert.NoError(t, err, "Failed to create storage manager")
	defer manager.Close()

	assert.NoError(t, manager.Set("a", "1"))
	assert.NoError(t, manager.Set("b", "2"))

	assert.NoError(t, manager.Delete("a"))
	_, ok := manager.Get("a")
	assert.False(t, ok)

	assert.NoError(t, manager.Reset())
	keys, err := manager.Keys()
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestUnlockDateKey(t *testing.T) {
	assert.Equal(t, "trophy_welcome_date", UnlockDateKey("welcome"))
}
