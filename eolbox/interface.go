package eolbox

import (
	"fmt"

	"github.com/sokinpui/eolbox/lineending"
	"github.com/sokinpui/eolbox/model"
)

// Inspect classifies content and counts its line breaks.
func Inspect(content string) model.Report {
	counts := lineending.Count(content)
	return model.Report{
		Kind:   counts.Kind(),
		Counts: counts,
	}
}

// Normalize converts content to the line ending named by target, such as
// "lf", "crlf", "unix" or "dos".
func Normalize(content, target string) (string, error) {
	kind, err := lineending.ParseKind(target)
	if err != nil {
		return "", fmt.Errorf("failed to normalize: %w", err)
	}
	return lineending.Convert(content, kind)
}
