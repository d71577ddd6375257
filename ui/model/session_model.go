package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel tracks the current viewing session: which user/day is
// selected, whether a load is in flight and the last load outcome. It is
// decoupled from the UI; presenters should poll Values() and update views.
// A new session ID is minted per selection so late results from a replaced
// session are recognizable in logs.
type SessionModel struct {
	id       string
	userID   string
	date     string
	loading  bool
	loadedAt time.Time
	errMsg   string
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// Select starts a fresh session for one user/day and marks it loading.
// Returns the new session ID.
func (m *SessionModel) Select(userID, date string) string {
	if m == nil {
		return ""
	}
	m.id = uuid.NewString()
	m.userID = userID
	m.date = date
	m.loading = true
	m.loadedAt = time.Time{}
	m.errMsg = ""
	return m.id
}

// LoadSucceeded records a completed load at the given time.
func (m *SessionModel) LoadSucceeded(now time.Time) {
	if m == nil {
		return
	}
	m.loading = false
	m.loadedAt = now
	m.errMsg = ""
}

// LoadFailed records a failed load; the message is shown until a retry.
func (m *SessionModel) LoadFailed(msg string) {
	if m == nil {
		return
	}
	m.loading = false
	m.errMsg = msg
}

// Values returns the session fields the views render.
func (m *SessionModel) Values() (id, userID, date string, loading bool, errMsg string) {
	if m == nil {
		return "", "", "", false, ""
	}
	return m.id, m.userID, m.date, m.loading, m.errMsg
}

// Active reports whether a user/day has been selected.
func (m *SessionModel) Active() bool {
	return m != nil && m.id != ""
}
