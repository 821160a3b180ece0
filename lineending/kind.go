// Package lineending classifies, converts and visualizes the line breaks
// of a text. A line break is one of "\r\n", a "\r" not followed by "\n",
// or a "\n" not preceded by "\r".
package lineending

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a line-ending convention.
type Kind int

const (
	None        Kind = iota // no line break present
	CRLF                    // Windows
	CR                      // classic Macintosh
	LF                      // Unix
	Mixed                   // more than one convention present
	Unsupported             // the host cannot report a convention
)

// ErrInvalidTarget is returned when a conversion target is not CRLF, CR or LF.
var ErrInvalidTarget = errors.New("invalid line ending target")

var kindNames = map[Kind]string{
	None:        "none",
	CRLF:        "crlf",
	CR:          "cr",
	LF:          "lf",
	Mixed:       "mixed",
	Unsupported: "unsupported",
}

var kindAliases = map[string]Kind{
	"none":        None,
	"crlf":        CRLF,
	"dos":         CRLF,
	"windows":     CRLF,
	"win":         CRLF,
	"cr":          CR,
	"mac":         CR,
	"macintosh":   CR,
	"lf":          LF,
	"unix":        LF,
	"mixed":       Mixed,
	"unsupported": Unsupported,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsConcrete reports whether k names an actual break sequence.
func (k Kind) IsConcrete() bool {
	return k == CRLF || k == CR || k == LF
}

// Sequence returns the break characters of a concrete kind.
func (k Kind) Sequence() (string, error) {
	switch k {
	case CRLF:
		return "\r\n", nil
	case CR:
		return "\r", nil
	case LF:
		return "\n", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTarget, k)
	}
}

// ParseKind parses a kind name such as "crlf", "mac" or "unix".
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return None, fmt.Errorf("unknown line ending %q", s)
	}
	return k, nil
}
