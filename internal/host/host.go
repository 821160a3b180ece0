// Package host provides the text controls that the demo drives: an
// in-memory edit control and a Neovim buffer. Both report and change a
// native line-ending convention through numeric codes.
package host

import (
	"errors"
	"fmt"

	"github.com/sokinpui/eolbox/lineending"
)

// ErrUnsupported is returned when a host cannot change its convention.
var ErrUnsupported = errors.New("setting line ending type is not supported")

// Adapter is a text control with native line-ending tracking.
type Adapter interface {
	// Text returns the full content.
	Text() (string, error)
	// SetText replaces the full content.
	SetText(text string) error
	// InsertAtCursor inserts text at the caret, replacing any selection.
	InsertAtCursor(text string) error
	// QueryConvention returns the host's native convention code.
	QueryConvention() (Code, error)
	// SetConvention changes the native convention and converts the content.
	SetConvention(kind lineending.Kind) error
	Close() error
}

// Restorer is an Adapter that can put back a text together with the
// convention it had, without detecting one from the text.
type Restorer interface {
	Restore(text string, kind lineending.Kind) error
}

// Code is the numeric convention reported by a host.
type Code int

const (
	CodeUnsupported Code = 0
	CodeCRLF        Code = 1
	CodeCR          Code = 2
	CodeLF          Code = 3
)

// CodeFor returns the code of a concrete kind, or CodeUnsupported.
func CodeFor(kind lineending.Kind) Code {
	switch kind {
	case lineending.CRLF:
		return CodeCRLF
	case lineending.CR:
		return CodeCR
	case lineending.LF:
		return CodeLF
	default:
		return CodeUnsupported
	}
}

// Kind maps a code to its kind. ok is false for codes outside the known range.
func (c Code) Kind() (kind lineending.Kind, ok bool) {
	switch c {
	case CodeUnsupported:
		return lineending.Unsupported, true
	case CodeCRLF:
		return lineending.CRLF, true
	case CodeCR:
		return lineending.CR, true
	case CodeLF:
		return lineending.LF, true
	default:
		return lineending.Unsupported, false
	}
}

// Describe returns the notice shown for a code.
func Describe(c Code) string {
	switch c {
	case CodeUnsupported:
		return "Retrieving line ending type is not supported."
	case CodeCRLF:
		return "Windows CRLF"
	case CodeCR:
		return "Macintosh CR"
	case CodeLF:
		return "Unix LF"
	default:
		return fmt.Sprintf("Unknown line ending type: %d", int(c))
	}
}
