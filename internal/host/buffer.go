package host

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sokinpui/eolbox/internal/log"
	"github.com/sokinpui/eolbox/lineending"
)

// ErrInvalidUTF8 is returned when a buffer is given text that is not UTF-8.
var ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

// Options configure a Buffer.
type Options struct {
	// TrackEOL enables native convention tracking. Without it the buffer
	// behaves like a control that only knows CRLF.
	TrackEOL bool
	// ConvertInserted converts inserted text to the buffer's convention
	// instead of keeping its original breaks.
	ConvertInserted bool
	// DefaultConvention is used until a text with breaks is loaded.
	DefaultConvention lineending.Kind
}

// DefaultOptions returns tracking enabled with a CRLF default.
func DefaultOptions() Options {
	return Options{
		TrackEOL:          true,
		DefaultConvention: lineending.CRLF,
	}
}

// Editor is an Adapter that also exposes caret and selection editing.
type Editor interface {
	Adapter
	Cursor() int
	Selection() (start, end int, ok bool)
	MoveLeft(extend bool)
	MoveRight(extend bool)
	MoveUp(extend bool)
	MoveDown(extend bool)
	Home(extend bool)
	End(extend bool)
	SelectAll()
	Backspace()
	Delete()
	Newline() error
}

// Buffer is an in-memory multi-line edit control. Positions are rune
// offsets. The caret never rests between the two halves of a CRLF when
// moved by the editing helpers.
type Buffer struct {
	opts       Options
	text       []rune
	cursor     int
	anchor     int // -1 when nothing is selected
	convention lineending.Kind
}

var (
	_ Editor   = (*Buffer)(nil)
	_ Restorer = (*Buffer)(nil)
)

// NewBuffer creates an empty buffer.
func NewBuffer(opts Options) *Buffer {
	conv := opts.DefaultConvention
	if !conv.IsConcrete() {
		conv = lineending.CRLF
	}
	return &Buffer{
		opts:       opts,
		anchor:     -1,
		convention: conv,
	}
}

// Text returns the buffer content.
func (b *Buffer) Text() (string, error) {
	return string(b.text), nil
}

// SetText replaces the content and moves the caret to the start. When
// tracking is enabled the convention becomes the kind of the first break.
// Text that is not UTF-8 is rejected and the buffer is left unchanged.
func (b *Buffer) SetText(text string) error {
	first := lineending.None
	if b.opts.TrackEOL {
		first = lineending.First(text)
	}
	return b.Restore(text, first)
}

// Restore replaces the content and sets the convention to kind without
// looking at the breaks of text. A kind that is not concrete keeps the
// current convention.
func (b *Buffer) Restore(text string, kind lineending.Kind) error {
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	b.text = []rune(text)
	b.cursor = 0
	b.anchor = -1
	if b.opts.TrackEOL && kind.IsConcrete() {
		b.convention = kind
	}
	log.Debug(log.CatHost, "buffer text set", "runes", len(b.text), "convention", b.convention)
	return nil
}

// InsertAtCursor replaces the selection, if any, with text.
func (b *Buffer) InsertAtCursor(text string) error {
	if b.opts.ConvertInserted {
		converted, err := lineending.Convert(text, b.nativeConvention())
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		text = converted
	}
	b.deleteSelection()

	ins := []rune(text)
	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:b.cursor]...)
	out = append(out, ins...)
	out = append(out, b.text[b.cursor:]...)
	b.text = out
	b.cursor += len(ins)
	log.Debug(log.CatHost, "buffer insert", "text", lineending.Visualize(text), "cursor", b.cursor)
	return nil
}

// QueryConvention reports CodeUnsupported when tracking is disabled.
func (b *Buffer) QueryConvention() (Code, error) {
	if !b.opts.TrackEOL {
		return CodeUnsupported, nil
	}
	return CodeFor(b.convention), nil
}

// SetConvention converts the whole buffer to kind and records it as the
// native convention. The caret keeps its logical position.
func (b *Buffer) SetConvention(kind lineending.Kind) error {
	if !b.opts.TrackEOL {
		return ErrUnsupported
	}

	cursor := b.cursor
	if b.insideCRLF(cursor) {
		cursor++
	}
	head, err := lineending.Convert(string(b.text[:cursor]), kind)
	if err != nil {
		return fmt.Errorf("set convention: %w", err)
	}
	tail, err := lineending.Convert(string(b.text[cursor:]), kind)
	if err != nil {
		return fmt.Errorf("set convention: %w", err)
	}

	headRunes := []rune(head)
	b.text = append(headRunes, []rune(tail)...)
	b.cursor = len(headRunes)
	b.anchor = -1
	b.convention = kind
	log.Info(log.CatHost, "buffer convention set", "convention", kind)
	return nil
}

// Close is a no-op.
func (b *Buffer) Close() error { return nil }

// Cursor returns the caret position.
func (b *Buffer) Cursor() int { return b.cursor }

// Selection returns the selected range, ordered.
func (b *Buffer) Selection() (start, end int, ok bool) {
	if b.anchor < 0 || b.anchor == b.cursor {
		return 0, 0, false
	}
	if b.anchor < b.cursor {
		return b.anchor, b.cursor, true
	}
	return b.cursor, b.anchor, true
}

// SelectAll selects the whole text with the caret at the end.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
}

// Newline inserts the native convention at the caret.
func (b *Buffer) Newline() error {
	seq, err := b.nativeConvention().Sequence()
	if err != nil {
		return err
	}
	return b.InsertAtCursor(seq)
}

func (b *Buffer) MoveLeft(extend bool) {
	pos := b.cursor
	switch {
	case pos == 0:
	case b.insideCRLF(pos - 1):
		pos -= 2
	default:
		pos--
	}
	b.moveTo(pos, extend)
}

func (b *Buffer) MoveRight(extend bool) {
	pos := b.cursor
	switch {
	case pos >= len(b.text):
	case b.insideCRLF(pos + 1):
		pos += 2
	default:
		pos++
	}
	b.moveTo(pos, extend)
}

func (b *Buffer) MoveUp(extend bool) {
	lines := b.lines()
	idx := lineIndex(lines, b.cursor)
	if idx == 0 {
		b.moveTo(0, extend)
		return
	}
	col := b.cursor - lines[idx].start
	prev := lines[idx-1]
	b.moveTo(prev.start+min(col, prev.end-prev.start), extend)
}

func (b *Buffer) MoveDown(extend bool) {
	lines := b.lines()
	idx := lineIndex(lines, b.cursor)
	if idx == len(lines)-1 {
		b.moveTo(len(b.text), extend)
		return
	}
	col := b.cursor - lines[idx].start
	next := lines[idx+1]
	b.moveTo(next.start+min(col, next.end-next.start), extend)
}

func (b *Buffer) Home(extend bool) {
	lines := b.lines()
	b.moveTo(lines[lineIndex(lines, b.cursor)].start, extend)
}

func (b *Buffer) End(extend bool) {
	lines := b.lines()
	b.moveTo(lines[lineIndex(lines, b.cursor)].end, extend)
}

// Backspace deletes the selection or the character before the caret. A
// CRLF is deleted as one unit.
func (b *Buffer) Backspace() {
	if b.deleteSelection() || b.cursor == 0 {
		return
	}
	start := b.cursor - 1
	if b.insideCRLF(start) {
		start--
	}
	b.remove(start, b.cursor)
	b.cursor = start
}

// Delete deletes the selection or the character after the caret.
func (b *Buffer) Delete() {
	if b.deleteSelection() || b.cursor >= len(b.text) {
		return
	}
	end := b.cursor + 1
	if b.insideCRLF(end) {
		end++
	}
	b.remove(b.cursor, end)
}

func (b *Buffer) nativeConvention() lineending.Kind {
	if !b.opts.TrackEOL {
		return lineending.CRLF
	}
	return b.convention
}

// insideCRLF reports whether pos sits between a '\r' and a '\n'.
func (b *Buffer) insideCRLF(pos int) bool {
	return pos > 0 && pos < len(b.text) && b.text[pos-1] == '\r' && b.text[pos] == '\n'
}

func (b *Buffer) moveTo(pos int, extend bool) {
	if extend {
		if b.anchor < 0 {
			b.anchor = b.cursor
		}
	} else {
		b.anchor = -1
	}
	b.cursor = max(0, min(pos, len(b.text)))
}

func (b *Buffer) deleteSelection() bool {
	start, end, ok := b.Selection()
	b.anchor = -1
	if !ok {
		return false
	}
	b.remove(start, end)
	b.cursor = start
	return true
}

func (b *Buffer) remove(start, end int) {
	b.text = append(b.text[:start], b.text[end:]...)
}

// lineSpan is a line's rune range; end is where its break begins.
type lineSpan struct {
	start int
	end   int
}

func (b *Buffer) lines() []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(b.text); i++ {
		switch b.text[i] {
		case '\r':
			spans = append(spans, lineSpan{start, i})
			if i+1 < len(b.text) && b.text[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n':
			spans = append(spans, lineSpan{start, i})
			start = i + 1
		}
	}
	return append(spans, lineSpan{start, len(b.text)})
}

func lineIndex(lines []lineSpan, pos int) int {
	for i, l := range lines {
		if pos <= l.end {
			return i
		}
		if i+1 < len(lines) && pos < lines[i+1].start {
			return i
		}
	}
	return len(lines) - 1
}
