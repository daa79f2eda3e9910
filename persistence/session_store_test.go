package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionStoreSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := Session{
		ID:        "abc123",
		Problem:   "implement binary search",
		Language:  "Python",
		FinalCode: "def search(): ...",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	stages := []Stage{
		{Seq: 0, Name: "analyze", Role: "problem_analyzer", Output: "analysis"},
		{Seq: 1, Name: "write", Role: "code_writer", Output: "code"},
	}
	require.NoError(t, store.Save(ctx, session, stages))

	loaded, loadedStages, err := store.Load(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, session.Problem, loaded.Problem)
	assert.Equal(t, session.Language, loaded.Language)
	assert.Equal(t, session.FinalCode, loaded.FinalCode)
	require.Len(t, loadedStages, 2)
	assert.Equal(t, "analyze", loadedStages[0].Name)
	assert.Equal(t, "code_writer", loadedStages[1].Role)
}

func TestSessionStoreList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"one", "two"} {
		require.NoError(t, store.Save(ctx, Session{
			ID:        id,
			Problem:   "p",
			Language:  "Go",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}, nil))
	}

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "two", sessions[0].ID, "newest first")
}

func TestSessionStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "gone", Problem: "p", Language: "Go", CreatedAt: time.Now()}, []Stage{
		{Seq: 0, Name: "analyze", Role: "problem_analyzer", Output: "out"},
	}))
	require.NoError(t, store.Delete(ctx, "gone"))

	_, _, err := store.Load(ctx, "gone")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "gone"), ErrSessionNotFound)
}
