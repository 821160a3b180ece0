package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokinpui/eolbox/lineending"
)

func TestUndoRedo(t *testing.T) {
	m := New(0)
	_, ok := m.Undo()
	require.False(t, ok)

	m.Write(Edit{Label: "type", Before: "", After: "a"})
	m.Write(Edit{Label: "type", Before: "a", After: "ab"})
	require.Equal(t, 2, m.Len())

	e, ok := m.Undo()
	require.True(t, ok)
	require.Equal(t, "a", e.Before)

	e, ok = m.Redo()
	require.True(t, ok)
	require.Equal(t, "ab", e.After)

	_, ok = m.Redo()
	require.False(t, ok)
}

func TestWrite_DropsRedo(t *testing.T) {
	m := New(0)
	m.Write(Edit{Before: "", After: "a"})
	m.Write(Edit{Before: "a", After: "ab"})
	m.Undo()

	m.Write(Edit{Before: "a", After: "ax"})
	_, ok := m.Redo()
	require.False(t, ok)

	e, _ := m.Undo()
	require.Equal(t, "ax", e.After)
}

func TestWrite_SkipsNoop(t *testing.T) {
	m := New(0)
	m.Write(Edit{Before: "a", After: "a"})
	require.Equal(t, 0, m.Len())

	m.Write(Edit{Before: "a", After: "a", BeforeKind: lineending.CRLF, AfterKind: lineending.CRLF})
	require.Equal(t, 0, m.Len())
}

func TestWrite_KeepsConventionChange(t *testing.T) {
	m := New(0)
	m.Write(Edit{Label: "set line ending", Before: "a", After: "a", BeforeKind: lineending.CRLF, AfterKind: lineending.LF})
	require.Equal(t, 1, m.Len())

	e, ok := m.Undo()
	require.True(t, ok)
	require.Equal(t, lineending.CRLF, e.BeforeKind)
	require.Equal(t, lineending.LF, e.AfterKind)
}

func TestWrite_Limit(t *testing.T) {
	m := New(2)
	m.Write(Edit{Before: "", After: "1"})
	m.Write(Edit{Before: "1", After: "2"})
	m.Write(Edit{Before: "2", After: "3"})
	require.Equal(t, 2, m.Len())

	e, _ := m.Undo()
	require.Equal(t, "2", e.Before)
	e, _ = m.Undo()
	require.Equal(t, "1", e.Before)
	_, ok := m.Undo()
	require.False(t, ok)
}
