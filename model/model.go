package model

import "github.com/sokinpui/eolbox/lineending"

// Report holds the results of an operation for display.
type Report struct {
	// Source names where the text came from (a path, "stdin" or "clipboard").
	Source string
	Kind   lineending.Kind
	Counts lineending.Counts
	// Visual is the text with <CR> and <LF> markers.
	Visual string
	Target lineending.Kind
	// Diff is a rendered before/after comparison, set on request.
	Diff    string
	Written bool
	Message string
}
