package debug

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore()
	id := store.Put(`\documentclass{article}`, "! Undefined control sequence.", []string{"check macros"})

	session, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, `\documentclass{article}`, session.LaTeX)
	assert.Equal(t, "! Undefined control sequence.", session.Log)
	assert.Equal(t, []string{"check macros"}, session.Hints)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestStore_UnknownID(t *testing.T) {
	store := NewStore()
	_, ok := store.Get(uuid.New())
	assert.False(t, ok)
}

func TestStore_ExpiredSessionGone(t *testing.T) {
	store := NewStore()
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	id := store.Put("doc", "log", nil)
	current = current.Add(DefaultSessionTTL + time.Minute)

	_, ok := store.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_FreshSessionSurvivesTTLWindow(t *testing.T) {
	store := NewStore()
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	id := store.Put("doc", "log", nil)
	current = current.Add(DefaultSessionTTL - time.Minute)

	_, ok := store.Get(id)
	assert.True(t, ok)
}

func TestStore_CapEvictsOldest(t *testing.T) {
	store := NewStore()
	store.max = 3
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		ids = append(ids, store.Put(fmt.Sprintf("doc %d", i), "log", nil))
		current = current.Add(time.Second)
	}

	assert.Equal(t, 3, store.Len())
	_, ok := store.Get(ids[0])
	assert.False(t, ok, "oldest session should have been evicted")
	_, ok = store.Get(ids[3])
	assert.True(t, ok)
}
