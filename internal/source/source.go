package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sokinpui/eolbox/internal/log"
)

// Content is text read from a source, with the name it came from.
type Content struct {
	Name string
	Text string
	// UTF16 is set when the input was UTF-16 with a byte order mark.
	UTF16 bool
	// BOM is set when UTF-8 input started with a byte order mark.
	BOM bool
}

// SourceProvider determines and retrieves the source content.
type SourceProvider struct {
	path  string
	stdin *os.File

	// readClipboard is swapped in tests.
	readClipboard func() (string, error)
}

// New creates a SourceProvider reading path when it is non-empty.
func New(path string) *SourceProvider {
	return &SourceProvider{
		path:          path,
		stdin:         os.Stdin,
		readClipboard: clipboard.ReadAll,
	}
}

// GetContent retrieves content from the file, stdin (if piped) or the clipboard.
func (sp *SourceProvider) GetContent() (Content, error) {
	if sp.path != "" {
		data, err := os.ReadFile(sp.path)
		if err != nil {
			return Content{}, fmt.Errorf("failed to read %s: %w", sp.path, err)
		}
		log.Debug(log.CatSource, "read file", "path", sp.path, "bytes", len(data))
		return decode(sp.path, data)
	}

	if sp.isPiped() {
		data, err := io.ReadAll(sp.stdin)
		if err != nil {
			return Content{}, fmt.Errorf("failed to read from stdin: %w", err)
		}
		log.Debug(log.CatSource, "read stdin", "bytes", len(data))
		return decode("stdin", data)
	}

	text, err := sp.readClipboard()
	if err != nil {
		return Content{}, fmt.Errorf("failed to read from clipboard: %w", err)
	}
	log.Debug(log.CatSource, "read clipboard", "runes", len([]rune(text)))
	return Content{Name: "clipboard", Text: text}, nil
}

func (sp *SourceProvider) isPiped() bool {
	if sp.stdin == nil {
		return false
	}
	stat, err := sp.stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// decode turns raw bytes into text. UTF-16 input needs a byte order mark;
// anything else is taken as UTF-8 with an optional BOM stripped.
func decode(name string, data []byte) (Content, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return Content{}, fmt.Errorf("failed to decode UTF-16 %s: %w", name, err)
		}
		return Content{Name: name, Text: string(out), UTF16: true}, nil
	}
	if bytes.HasPrefix(data, bomUTF8) {
		return Content{Name: name, Text: string(data[len(bomUTF8):]), BOM: true}, nil
	}
	return Content{Name: name, Text: string(data)}, nil
}

// Encode returns text as bytes for writing back in the encoding c was read
// with: UTF-16LE with a BOM, or UTF-8 with its BOM if it had one.
func (c Content) Encode(text string) ([]byte, error) {
	if !c.UTF16 {
		if c.BOM {
			return append(append([]byte{}, bomUTF8...), text...), nil
		}
		return []byte(text), nil
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	out, _, err := transform.Bytes(enc, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode UTF-16: %w", err)
	}
	return out, nil
}

// WriteClipboard copies text to the system clipboard.
func WriteClipboard(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return clipboard.WriteAll(text)
}
