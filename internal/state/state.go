// Package state keeps the undo history of the demo text. History lives in
// memory only and ends with the program.
package state

import "github.com/sokinpui/eolbox/lineending"

// DefaultLimit is the number of edits kept when New is given 0.
const DefaultLimit = 200

// Edit is one change of the text, recorded as the text and the host's
// convention before and after. A convention of lineending.None means the
// host did not report one.
type Edit struct {
	Label      string
	Before     string
	After      string
	BeforeKind lineending.Kind
	AfterKind  lineending.Kind
}

// Manager holds edits and a pointer to the last applied one.
type Manager struct {
	history      []Edit
	currentIndex int
	limit        int
}

// New creates an empty history keeping at most limit edits.
func New(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{currentIndex: -1, limit: limit}
}

// Write adds an edit, dropping anything that could have been redone.
func (m *Manager) Write(e Edit) {
	if e.Before == e.After && e.BeforeKind == e.AfterKind {
		return
	}
	if m.currentIndex < len(m.history)-1 {
		m.history = m.history[:m.currentIndex+1]
	}
	m.history = append(m.history, e)
	if len(m.history) > m.limit {
		m.history = m.history[len(m.history)-m.limit:]
	}
	m.currentIndex = len(m.history) - 1
}

// Undo returns the last applied edit and moves the history pointer back.
func (m *Manager) Undo() (Edit, bool) {
	if m.currentIndex < 0 {
		return Edit{}, false
	}
	e := m.history[m.currentIndex]
	m.currentIndex--
	return e, true
}

// Redo returns the next edit and moves the history pointer forward.
func (m *Manager) Redo() (Edit, bool) {
	next := m.currentIndex + 1
	if next >= len(m.history) {
		return Edit{}, false
	}
	m.currentIndex = next
	return m.history[next], true
}

// Len returns the number of undoable edits.
func (m *Manager) Len() int {
	return m.currentIndex + 1
}
