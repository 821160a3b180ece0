package eolbox

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/text/transform"

	"github.com/sokinpui/eolbox/cli"
	"github.com/sokinpui/eolbox/internal/fs"
	"github.com/sokinpui/eolbox/internal/log"
	"github.com/sokinpui/eolbox/internal/source"
	"github.com/sokinpui/eolbox/lineending"
	"github.com/sokinpui/eolbox/model"
)

// App runs the one-shot modes.
type App struct {
	cfg            *cli.Config
	sourceProvider *source.SourceProvider
	stdout         io.Writer
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance. cfg must have been validated.
func New(cfg *cli.Config) (*App, error) {
	if cfg.To != "" && !cfg.Target.IsConcrete() {
		return nil, fmt.Errorf("config not validated: %w: %s", lineending.ErrInvalidTarget, cfg.Target)
	}
	return &App{
		cfg:            cfg,
		sourceProvider: source.New(cfg.File),
		stdout:         os.Stdout,
	}, nil
}

// SetOutput sets where plain conversions are streamed. Defaults to stdout.
func (a *App) SetOutput(w io.Writer) {
	a.stdout = w
}

// Execute executes the mode selected by the flags.
func (a *App) Execute() (report model.Report, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return model.Report{}, err
	}
	if content.Text == "" {
		return model.Report{Message: "Source is empty. Nothing to process."}, nil
	}

	switch {
	case a.cfg.Classify:
		return inspectSource(content), nil
	case a.cfg.Visualize:
		report := inspectSource(content)
		report.Visual = lineending.Visualize(content.Text)
		return report, nil
	case a.cfg.To != "":
		return a.convert(content)
	default:
		return model.Report{}, fmt.Errorf("no mode selected")
	}
}

func inspectSource(content source.Content) model.Report {
	report := Inspect(content.Text)
	report.Source = content.Name
	return report
}

func (a *App) convert(content source.Content) (model.Report, error) {
	report := inspectSource(content)
	report.Target = a.cfg.Target
	log.Info(log.CatConvert, "convert", "source", content.Name, "from", report.Kind, "to", report.Target)

	switch {
	case a.cfg.Diff:
		converted, err := lineending.Convert(content.Text, a.cfg.Target)
		if err != nil {
			return model.Report{}, err
		}
		report.Diff = Diff(content.Text, converted)
		if report.Diff == "" {
			report.Message = fmt.Sprintf("%s already uses %s line endings.", content.Name, a.cfg.Target)
		}
		return report, nil

	case a.cfg.InPlace:
		converted, err := lineending.Convert(content.Text, a.cfg.Target)
		if err != nil {
			return model.Report{}, err
		}
		if converted == content.Text {
			report.Message = fmt.Sprintf("%s already uses %s line endings.", content.Name, a.cfg.Target)
			return report, nil
		}
		data, err := content.Encode(converted)
		if err != nil {
			return model.Report{}, err
		}
		if err := fs.ReplaceFile(a.cfg.File, data); err != nil {
			return model.Report{}, err
		}
		report.Written = true
		return report, nil

	default:
		if _, err := ConvertStream(a.stdout, strings.NewReader(content.Text), a.cfg.Target); err != nil {
			return model.Report{}, err
		}
		return report, nil
	}
}

// ConvertStream copies src to dst, rewriting every line break to target.
func ConvertStream(dst io.Writer, src io.Reader, target lineending.Kind) (int64, error) {
	t, err := lineending.NewTransformer(target)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dst, transform.NewReader(src, t))
	if err != nil {
		return n, fmt.Errorf("failed to convert stream: %w", err)
	}
	return n, nil
}

// Diff renders a line diff of the visualized forms of before and after.
// Each line is shown with its break marker. It returns "" when they match.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(markedLines(before), markedLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// markedLines puts each line of text on its own "\n"-terminated row,
// followed by the marker of its original break.
func markedLines(text string) string {
	lines, ends := lineending.Lines(text)
	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(line)
		sb.WriteString(lineending.Marker(ends[i]))
		sb.WriteByte('\n')
	}
	return sb.String()
}
