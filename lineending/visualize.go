package lineending

import "strings"

// Markers used by Visualize.
const (
	MarkerCR = "<CR>"
	MarkerLF = "<LF>"
)

// Visualize replaces every carriage return with <CR> and every line feed
// with <LF>. A CRLF pair renders as <CR><LF>.
func Visualize(text string) string {
	text = strings.ReplaceAll(text, "\r", MarkerCR)
	return strings.ReplaceAll(text, "\n", MarkerLF)
}

// Marker returns the visualized form of a break kind, or "" for None.
func Marker(kind Kind) string {
	switch kind {
	case CRLF:
		return MarkerCR + MarkerLF
	case CR:
		return MarkerCR
	case LF:
		return MarkerLF
	default:
		return ""
	}
}
