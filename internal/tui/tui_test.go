package tui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/eolbox/internal/host"
	"github.com/sokinpui/eolbox/lineending"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newModel(t *testing.T, opts host.Options, text string) Model {
	t.Helper()
	buf := host.NewBuffer(opts)
	require.NoError(t, buf.SetText(text))
	return New(buf, "buffer")
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestQueryConvention_ShowsHostAndClassifier(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), DemoText)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.Equal(t, modeNotice, m.mode)
	require.Equal(t, titleInfo, m.notice.title)
	require.Contains(t, m.notice.body, "Unix LF")
	require.Contains(t, m.notice.body, "Classifier: mixed (crlf=1 cr=1 lf=1)")

	m = send(t, m, keyRunes("x"))
	require.Equal(t, modeEdit, m.mode)
	require.Equal(t, DemoText, m.text, "closing a notice must not type")
}

func TestQueryConvention_AltDigit(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "a\r\nb")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1"), Alt: true})
	require.Equal(t, modeNotice, m.mode)
	require.Contains(t, m.notice.body, "Windows CRLF")
}

func TestQueryConvention_Unsupported(t *testing.T) {
	opts := host.DefaultOptions()
	opts.TrackEOL = false
	m := newModel(t, opts, "a\nb")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.Contains(t, m.notice.body, "Retrieving line ending type is not supported.")
}

func TestSetConvention_Answers(t *testing.T) {
	tests := []struct {
		answer string
		want   lineending.Kind
	}{
		{answer: "a", want: lineending.CRLF},
		{answer: "r", want: lineending.CR},
		{answer: "i", want: lineending.LF},
		{answer: "1", want: lineending.CRLF},
		{answer: "2", want: lineending.CR},
		{answer: "3", want: lineending.LF},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			m := newModel(t, host.DefaultOptions(), DemoText)

			m = send(t, m, tea.KeyMsg{Type: tea.KeyF2})
			require.Equal(t, modePrompt, m.mode)
			require.Equal(t, titlePrompt, m.notice.title)

			m = send(t, m, keyRunes(tt.answer))
			require.Equal(t, modeEdit, m.mode)
			require.Equal(t, tt.want, lineending.Classify(m.text))
			require.Equal(t, 3, m.counts.Total())

			code, err := m.host.QueryConvention()
			require.NoError(t, err)
			require.Equal(t, host.CodeFor(tt.want), code)
		})
	}
}

func TestSetConvention_EscCancels(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), DemoText)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF2}, keyRunes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeEdit, m.mode)
	require.Equal(t, DemoText, m.text)
}

func TestSetConvention_Unsupported(t *testing.T) {
	opts := host.DefaultOptions()
	opts.TrackEOL = false
	m := newModel(t, opts, DemoText)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF2}, keyRunes("i"))
	require.Equal(t, modeNotice, m.mode)
	require.Contains(t, m.notice.body, "not supported")
	require.Equal(t, DemoText, m.text)
}

func TestGetText_Visualizes(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), DemoText)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF3})
	require.Equal(t, modeNotice, m.mode)
	require.Equal(t, lineending.Visualize(DemoText), m.notice.body)
	require.Contains(t, m.notice.body, `\r\n.<CR><LF>Third`)
}

func TestInsertButtons(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "ab")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF4})
	require.Equal(t, "a\nb", m.text)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF5})
	require.Equal(t, "a\n\r\nb", m.text)
	require.Equal(t, lineending.Mixed, m.counts.Kind())
}

func TestTypingAndEditing(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "")

	m = send(t, m, keyRunes("hi"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, keyRunes("x"))
	require.Equal(t, "hi x", m.text)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "hi ", m.text)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "hi \r\n", m.text, "enter inserts the default convention")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlA}, keyRunes("z"))
	require.Equal(t, "z", m.text)
}

func TestEnterUsesDetectedConvention(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "a\rb")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnd}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "a\r\rb", m.text)
}

func TestCopyVisualized(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "a\r\nb")
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "a<CR><LF>b", copied)
	require.Contains(t, m.status, "Copied")

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Contains(t, m.status, "no clipboard")
}

func TestQuit(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "")

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyCtrlQ}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		require.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestToggleLog(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, m.showLog)
	require.Contains(t, m.View(), "Log")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.False(t, m.showLog)
}

func TestView_RendersButtonsAndMarkers(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), DemoText)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	view := m.View()
	for _, b := range buttons {
		require.Contains(t, view, b.label)
	}
	require.Contains(t, view, "<CR><LF>")
	require.Contains(t, view, "Last line doesn't have a line ending.")
	require.Contains(t, view, "mixed")
	require.Contains(t, view, "crlf=1 cr=1 lf=1")
}

func TestVisibleRows(t *testing.T) {
	rows := []string{"0", "1", "2", "3", "4"}

	require.Equal(t, rows, visibleRows(rows, 4, 0))
	require.Equal(t, []string{"0", "1"}, visibleRows(rows, 0, 2))
	require.Equal(t, []string{"3", "4"}, visibleRows(rows, 4, 2))
	require.Equal(t, []string{"1", "2", "3"}, visibleRows(rows, 3, 3))
}

// readOnly is an Adapter without editing helpers.
type readOnly struct {
	text string
}

func (r *readOnly) Text() (string, error)         { return r.text, nil }
func (r *readOnly) SetText(text string) error     { r.text = text; return nil }
func (r *readOnly) InsertAtCursor(s string) error { r.text += s; return nil }
func (r *readOnly) QueryConvention() (host.Code, error) {
	return host.Code(7), nil
}
func (r *readOnly) SetConvention(lineending.Kind) error { return errors.New("refused") }
func (r *readOnly) Close() error                        { return nil }

func TestReadOnlyHost(t *testing.T) {
	m := New(&readOnly{text: "a\nb"}, "nvim")
	require.Nil(t, m.editor)

	m = send(t, m, keyRunes("x"))
	require.Equal(t, "a\nb", m.text)
	require.Contains(t, m.status, "nvim")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.Contains(t, m.notice.body, "Unknown line ending type: 7")

	m = send(t, m, keyRunes("x"), tea.KeyMsg{Type: tea.KeyF5})
	require.Equal(t, "a\nb\r\n", m.text)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF2}, keyRunes("a"))
	require.Equal(t, titleError, m.notice.title)
	require.Contains(t, m.notice.body, "refused")

	require.True(t, strings.Contains(m.View(), "a"))
}

func TestUndoRedo(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), DemoText)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF2}, keyRunes("i"))
	require.Equal(t, lineending.LF, m.counts.Kind())
	m = send(t, m, keyRunes("x"))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, lineending.LF, m.counts.Kind())
	require.False(t, strings.HasPrefix(m.text, "x"))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, DemoText, m.text)
	require.Contains(t, m.status, "Undid set line ending")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "Nothing to undo.", m.status)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, lineending.LF, m.counts.Kind())
	require.Contains(t, m.status, "Redid")
}

func TestUndoRedo_KeepsHostConvention(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "abc")
	requireCode := func(m Model, want host.Code) {
		t.Helper()
		code, err := m.host.QueryConvention()
		require.NoError(t, err)
		require.Equal(t, want, code)
	}
	requireCode(m, host.CodeCRLF)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF4})
	require.Equal(t, "\nabc", m.text)
	requireCode(m, host.CodeCRLF)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "abc", m.text)
	requireCode(m, host.CodeCRLF)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, "\nabc", m.text)
	requireCode(m, host.CodeCRLF)
}

func TestUndoRedo_ConventionWithoutBreaks(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "abc")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF2}, keyRunes("r"))
	code, _ := m.host.QueryConvention()
	require.Equal(t, host.CodeCR, code)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Contains(t, m.status, "Undid set line ending")
	code, _ = m.host.QueryConvention()
	require.Equal(t, host.CodeCRLF, code)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	code, _ = m.host.QueryConvention()
	require.Equal(t, host.CodeCR, code)
}

func TestMouseClickPressesButton(t *testing.T) {
	m := newModel(t, host.DefaultOptions(), "a\r\nb")
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m.View()

	// Zones are stored by a background worker after Scan.
	require.Eventually(t, func() bool {
		return !zone.Get("btn-get").IsZero()
	}, time.Second, 10*time.Millisecond)

	z := zone.Get("btn-get")
	click := tea.MouseMsg{
		X:      (z.StartX + z.EndX) / 2,
		Y:      (z.StartY + z.EndY) / 2,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	}

	m = send(t, m, tea.MouseMsg{X: click.X, Y: click.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, modeEdit, m.mode, "only the release activates a button")

	m = send(t, m, click)
	require.Equal(t, modeNotice, m.mode)
	require.Equal(t, titleInfo, m.notice.title)
	require.Equal(t, "a<CR><LF>b", m.notice.body)

	m = send(t, m, click)
	require.Equal(t, modeEdit, m.mode, "a click closes the notice")
}
