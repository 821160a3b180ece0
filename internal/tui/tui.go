package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/sokinpui/eolbox/internal/host"
	"github.com/sokinpui/eolbox/internal/log"
	"github.com/sokinpui/eolbox/internal/source"
	"github.com/sokinpui/eolbox/internal/state"
	"github.com/sokinpui/eolbox/internal/ui"
	"github.com/sokinpui/eolbox/lineending"
)

// DemoText is the initial content of the demo window.
const DemoText = "First line ends with \\n.\nSecond line ends with \\r\\n.\r\nThird line ends with \\r.\rLast line doesn't have a line ending."

// Notice titles.
const (
	titleInfo   = "Info"
	titlePrompt = "Select Line Ending Type"
	titleError  = "Error"
)

type button struct {
	id    string
	label string
}

var buttons = []button{
	{id: "btn-type", label: "Line Ending Type"},
	{id: "btn-set", label: "Set Line Ending"},
	{id: "btn-get", label: "Get Text"},
	{id: "btn-lf", label: "Insert LF"},
	{id: "btn-crlf", label: "Insert CRLF"},
}

// --- Model ---
type Model struct {
	host     host.Adapter
	editor   host.Editor // nil when the host is not editable here
	hostName string

	keys    KeyMap
	help    help.Model
	history *state.Manager

	mode   mode
	notice notice

	text    string
	counts  lineending.Counts
	status  string
	err     error
	showLog bool

	width  int
	height int

	// copyText is swapped in tests.
	copyText func(string) error
}

type mode int

const (
	modeEdit mode = iota
	modeNotice
	modePrompt
)

type notice struct {
	title string
	body  string
}

// New creates the demo model over a host adapter. hostName is shown in
// the status line.
func New(h host.Adapter, hostName string) Model {
	editor, _ := h.(host.Editor)
	m := Model{
		host:     h,
		editor:   editor,
		hostName: hostName,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		history:  state.New(0),
		copyText: source.WriteClipboard,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch m.mode {
		case modeNotice:
			m.mode = modeEdit
			return m, nil
		case modePrompt:
			return m, nil
		}
		for i, b := range buttons {
			if zone.Get(b.id).InBounds(msg) {
				log.Debug(log.CatUI, "button clicked", "button", b.label)
				m.press(i)
				return m, nil
			}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeNotice:
			m.mode = modeEdit
			return m, nil
		case modePrompt:
			m.updatePrompt(msg)
			return m, nil
		}
		m.updateEdit(msg)
		return m, nil
	}
	return m, nil
}

// press activates the button at index i.
func (m *Model) press(i int) {
	m.status = ""
	switch i {
	case 0:
		m.queryConvention()
	case 1:
		m.mode = modePrompt
		m.notice = notice{title: titlePrompt, body: "Abort: Windows CRLF\nRetry: Macintosh CR\nIgnore: Unix LF"}
	case 2:
		m.showText()
	case 3:
		m.insert("\n")
	case 4:
		m.insert("\r\n")
	}
}

func (m *Model) updatePrompt(msg tea.KeyMsg) {
	var kind lineending.Kind
	switch {
	case key.Matches(msg, m.keys.ChooseCRLF):
		kind = lineending.CRLF
	case key.Matches(msg, m.keys.ChooseCR):
		kind = lineending.CR
	case key.Matches(msg, m.keys.ChooseLF):
		kind = lineending.LF
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeEdit
		return
	default:
		return
	}

	m.mode = modeEdit
	before, beforeKind := m.text, m.convention()
	if err := m.host.SetConvention(kind); err != nil {
		log.ErrorErr(log.CatUI, "set convention failed", err, "kind", kind)
		if errors.Is(err, host.ErrUnsupported) {
			m.showNotice(titleInfo, "Setting line ending type is not supported.")
		} else {
			m.showNotice(titleError, err.Error())
		}
		return
	}
	m.refresh()
	m.record("set line ending", before, beforeKind)
	m.status = fmt.Sprintf("Line ending set to %s.", kind)
}

func (m *Model) updateEdit(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.QueryType):
		m.press(0)
		return
	case key.Matches(msg, m.keys.SetType):
		m.press(1)
		return
	case key.Matches(msg, m.keys.GetText):
		m.press(2)
		return
	case key.Matches(msg, m.keys.InsertLF):
		m.press(3)
		return
	case key.Matches(msg, m.keys.InsertCRLF):
		m.press(4)
		return
	case key.Matches(msg, m.keys.Copy):
		m.copyVisualized()
		return
	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return
	case key.Matches(msg, m.keys.Redo):
		m.redo()
		return
	case key.Matches(msg, m.keys.ToggleLog):
		m.showLog = !m.showLog
		return
	}

	if m.editor == nil {
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeyEnter {
			m.status = fmt.Sprintf("The %s host is edited outside eolbox.", m.hostName)
		}
		return
	}
	m.status = ""

	e := m.editor
	before, beforeKind := m.text, m.convention()
	switch msg.String() {
	case "left":
		e.MoveLeft(false)
	case "shift+left":
		e.MoveLeft(true)
	case "right":
		e.MoveRight(false)
	case "shift+right":
		e.MoveRight(true)
	case "up":
		e.MoveUp(false)
	case "shift+up":
		e.MoveUp(true)
	case "down":
		e.MoveDown(false)
	case "shift+down":
		e.MoveDown(true)
	case "home":
		e.Home(false)
	case "shift+home":
		e.Home(true)
	case "end":
		e.End(false)
	case "shift+end":
		e.End(true)
	case "backspace":
		e.Backspace()
		m.refresh()
		m.record("backspace", before, beforeKind)
	case "delete":
		e.Delete()
		m.refresh()
		m.record("delete", before, beforeKind)
	default:
		switch {
		case key.Matches(msg, m.keys.SelectAll):
			e.SelectAll()
		case key.Matches(msg, m.keys.Newline):
			if err := e.Newline(); err != nil {
				m.err = err
				return
			}
			m.refresh()
			m.record("new line", before, beforeKind)
		case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
			m.insert(string(msg.Runes))
		}
	}
}

func (m *Model) queryConvention() {
	code, err := m.host.QueryConvention()
	if err != nil {
		log.ErrorErr(log.CatUI, "query convention failed", err)
		m.showNotice(titleError, err.Error())
		return
	}
	log.Debug(log.CatUI, "query convention", "code", int(code))
	m.refresh()
	body := fmt.Sprintf("%s\n\nClassifier: %s (%s)", host.Describe(code), m.counts.Kind(), ui.CountsLine(m.counts))
	m.showNotice(titleInfo, body)
}

func (m *Model) showText() {
	text, err := m.host.Text()
	if err != nil {
		m.showNotice(titleError, err.Error())
		return
	}
	m.showNotice(titleInfo, lineending.Visualize(text))
}

func (m *Model) insert(text string) {
	if text == "" {
		return
	}
	before, beforeKind := m.text, m.convention()
	if err := m.host.InsertAtCursor(text); err != nil {
		log.ErrorErr(log.CatUI, "insert failed", err)
		m.err = err
		return
	}
	m.refresh()
	m.record("insert", before, beforeKind)
}

func (m *Model) record(label, before string, beforeKind lineending.Kind) {
	m.history.Write(state.Edit{
		Label:      label,
		Before:     before,
		After:      m.text,
		BeforeKind: beforeKind,
		AfterKind:  m.convention(),
	})
}

// convention returns the host's current convention, or lineending.None
// when the host does not report a concrete one.
func (m *Model) convention() lineending.Kind {
	code, err := m.host.QueryConvention()
	if err != nil {
		return lineending.None
	}
	kind, ok := code.Kind()
	if !ok || !kind.IsConcrete() {
		return lineending.None
	}
	return kind
}

// undo and redo restore whole texts, so the caret returns to the start.
// The host convention is restored with the text.
func (m *Model) undo() {
	e, ok := m.history.Undo()
	if !ok {
		m.status = "Nothing to undo."
		return
	}
	m.restore(e.Before, e.BeforeKind, "Undid "+e.Label+".")
}

func (m *Model) redo() {
	e, ok := m.history.Redo()
	if !ok {
		m.status = "Nothing to redo."
		return
	}
	m.restore(e.After, e.AfterKind, "Redid "+e.Label+".")
}

func (m *Model) restore(text string, kind lineending.Kind, status string) {
	var err error
	if r, ok := m.host.(host.Restorer); ok {
		err = r.Restore(text, kind)
	} else {
		err = m.host.SetText(text)
		if err == nil && kind.IsConcrete() {
			err = m.host.SetConvention(kind)
		}
	}
	if err != nil {
		log.ErrorErr(log.CatUI, "restore failed", err)
		m.err = err
		return
	}
	m.refresh()
	m.status = status
}

func (m *Model) copyVisualized() {
	if err := m.copyText(lineending.Visualize(m.text)); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.status = "Copied visualized text to the clipboard."
}

func (m *Model) showNotice(title, body string) {
	m.mode = modeNotice
	m.notice = notice{title: title, body: body}
}

// refresh re-reads the host text and its counts.
func (m *Model) refresh() {
	text, err := m.host.Text()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.text = text
	m.counts = lineending.Count(text)
}
