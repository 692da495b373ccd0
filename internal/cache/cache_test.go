package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemo_SetGet(t *testing.T) {
	m := NewMemo[string, int]()

	_, ok := m.Get("missing")
	require.False(t, ok)

	m.Set("answer", 42, 0)
	v, ok := m.Get("answer")
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestMemo_TTLExpiry(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	now = func() time.Time { return current }
	defer func() { now = time.Now }()

	m := NewMemo[string, string]()
	m.Set("k", "v", time.Minute)

	_, ok := m.Get("k")
	require.True(t, ok)

	current = base.Add(2 * time.Minute)
	_, ok = m.Get("k")
	require.False(t, ok)
}

func TestMemo_DeleteAndClear(t *testing.T) {
	m := NewMemo[string, int]()
	m.Set("a", 1, 0)
	m.Set("b", 2, 0)

	m.Delete("a")
	_, ok := m.Get("a")
	require.False(t, ok)

	m.Clear()
	_, ok = m.Get("b")
	require.False(t, ok)
}
