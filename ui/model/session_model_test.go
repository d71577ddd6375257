package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionModel_Lifecycle(t *testing.T) {
	m := NewSessionModel()
	require.False(t, m.Active())

	id := m.Select("u1", "2024-01-01")
	require.NotEmpty(t, id)
	require.True(t, m.Active())
	_, user, date, loading, errMsg := m.Values()
	require.Equal(t, "u1", user)
	require.Equal(t, "2024-01-01", date)
	require.True(t, loading)
	require.Empty(t, errMsg)

	m.LoadSucceeded(time.Unix(100, 0))
	_, _, _, loading, errMsg = m.Values()
	require.False(t, loading)
	require.Empty(t, errMsg)

	// A new selection mints a new session ID and clears the outcome.
	m.LoadFailed("backend down")
	_, _, _, _, errMsg = m.Values()
	require.Equal(t, "backend down", errMsg)

	id2 := m.Select("u2", "2024-01-02")
	require.NotEqual(t, id, id2)
	_, _, _, loading, errMsg = m.Values()
	require.True(t, loading)
	require.Empty(t, errMsg)
}

func TestLiveModel_Toggle(t *testing.T) {
	m := &LiveModel{}
	require.False(t, m.Enabled())
	m.SetEnabled(true)
	require.True(t, m.Enabled())
	m.SetEnabled(true) // idempotent
	require.True(t, m.Enabled())
	m.SetEnabled(false)
	require.False(t, m.Enabled())
}
