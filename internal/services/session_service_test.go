package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSessions(t *testing.T, ttl time.Duration) SessionManager {
	t.Helper()
	m := NewSessionManager(zap.NewNop(), ttl)
	t.Cleanup(m.Stop)
	return m
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	m := newTestSessions(t, time.Minute)

	created := m.Create("js")
	got, ok := m.Get(created.Token)

	require.True(t, ok)
	assert.Equal(t, "js", got.Username)
	assert.False(t, got.Sorted)

	_, ok = m.Get("unknown-token")
	assert.False(t, ok)
}

func TestSessionManager_Expiry(t *testing.T) {
	m := newTestSessions(t, time.Millisecond)

	created := m.Create("js")
	time.Sleep(5 * time.Millisecond)

	_, ok := m.Get(created.Token)
	assert.False(t, ok)
}

func TestSessionManager_MarkSortedPersists(t *testing.T) {
	m := newTestSessions(t, time.Minute)
	created := m.Create("js")

	m.MarkSorted(created.Token)
	m.MarkSorted(created.Token) // repeated calls change nothing

	got, ok := m.Get(created.Token)
	require.True(t, ok)
	assert.True(t, got.Sorted)
}

func TestSessionManager_DestroyByUsername(t *testing.T) {
	m := newTestSessions(t, time.Minute)
	first := m.Create("js")
	second := m.Create("js")
	other := m.Create("jd")

	m.DestroyByUsername("js")

	_, ok := m.Get(first.Token)
	assert.False(t, ok)
	_, ok = m.Get(second.Token)
	assert.False(t, ok)
	_, ok = m.Get(other.Token)
	assert.True(t, ok)
}
