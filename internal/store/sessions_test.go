package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdeck/askdeck/internal/chat"
)

func testSessions() []chat.Session {
	now := time.Now().Truncate(time.Second)
	return []chat.Session{
		{ID: "s2", Title: "newer", Messages: []chat.Message{{Role: chat.RoleUser, Text: "hi"}}, CreatedAt: now, UpdatedAt: now},
		{ID: "s1", Title: "older", CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)},
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	sessions := NewSessionStore(NewMemoryKV())

	require.NoError(t, sessions.Save("a@x.com", testSessions()))

	loaded := sessions.Load("a@x.com")
	require.Len(t, loaded, 2)
	assert.Equal(t, "s2", loaded[0].ID, "order is preserved")
	assert.Equal(t, "hi", loaded[0].Messages[0].Text)
}

func TestSessionStore_LoadFailsSoft(t *testing.T) {
	kv := NewMemoryKV()
	sessions := NewSessionStore(kv)

	assert.Empty(t, sessions.Load("nobody@x.com"), "absent data loads as empty")

	require.NoError(t, kv.Set(StorageKeyPrefix+"a@x.com", "{not json"))
	assert.Empty(t, sessions.Load("a@x.com"), "malformed data loads as empty")
}

func TestSessionStore_GuestIsAlwaysEmpty(t *testing.T) {
	kv := NewMemoryKV()
	sessions := NewSessionStore(kv)

	require.NoError(t, sessions.Save("", testSessions()))
	assert.Empty(t, sessions.Load(""))
	if _, ok, _ := kv.Get(StorageKeyPrefix); ok {
		t.Error("guest save must not write to storage")
	}
}

func TestSessionStore_Delete(t *testing.T) {
	sessions := NewSessionStore(NewMemoryKV())
	require.NoError(t, sessions.Save("a@x.com", testSessions()))

	remaining, err := sessions.Delete("a@x.com", "s1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "s2", remaining[0].ID)

	// Deleting persists.
	assert.Len(t, sessions.Load("a@x.com"), 1)

	// Unknown id is a no-op.
	remaining, err = sessions.Delete("a@x.com", "no-such-id")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestSessionStore_Stats(t *testing.T) {
	kv := NewMemoryKV()
	sessions := NewSessionStore(kv)
	counter := NewUsageCounter(kv)

	collection := []chat.Session{{
		ID:    "s1",
		Title: "chat",
		Messages: []chat.Message{
			{Role: chat.RoleUser, Text: "q1"},
			{Role: chat.RoleAssistant, Text: "a1"},
			{Role: chat.RoleUser, Text: "q2"},
		},
	}}
	require.NoError(t, sessions.Save("a@x.com", collection))
	_, err := counter.Increment()
	require.NoError(t, err)

	stats := sessions.Stats("a@x.com", counter)
	assert.Equal(t, 1, stats.TotalChats)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 2, stats.TotalQuestions)
	assert.Equal(t, 1, stats.TotalReplies)
	assert.Equal(t, 1, stats.GlobalSearchCount)
	assert.Len(t, stats.RecentSessions, 1)

	guest := sessions.Stats("", counter)
	assert.Zero(t, guest.TotalChats)
	assert.Equal(t, 1, guest.GlobalSearchCount, "guests still see the global count")
}
