package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/sokinpui/eolbox/lineending"
	"github.com/sokinpui/eolbox/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

// --- Reports ---

// CountsLine formats break counts as "crlf=1 cr=1 lf=1".
func CountsLine(c lineending.Counts) string {
	return fmt.Sprintf("crlf=%d cr=%d lf=%d", c.CRLF, c.CR, c.LF)
}

// PrintReport writes the data of a report to out and the summary to stderr.
func PrintReport(out io.Writer, r model.Report) {
	if r.Message != "" {
		Info("%s", r.Message)
	}

	switch {
	case r.Diff != "":
		Header("--- %s: %s -> %s ---", r.Source, r.Kind, r.Target)
		fmt.Fprint(out, r.Diff)
	case r.Visual != "":
		fmt.Fprintln(out, r.Visual)
	case r.Target != lineending.None:
		// A plain conversion has already streamed its text to out.
		if r.Written {
			Success("Rewrote %s with %s line endings (%d break(s)).", r.Source, r.Target, r.Counts.Total())
		}
	case r.Source != "":
		fmt.Fprintf(out, "%s\t%s\n", r.Kind, CountsLine(r.Counts))
	}
}
