package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokinpui/eolbox/lineending"
	"github.com/sokinpui/eolbox/model"
)

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name   string
		report model.Report
		want   string
	}{
		{
			name:   "classify",
			report: model.Report{Source: "stdin", Kind: lineending.Mixed, Counts: lineending.Counts{CRLF: 1, CR: 2, LF: 3}},
			want:   "mixed\tcrlf=1 cr=2 lf=3\n",
		},
		{
			name:   "visualize",
			report: model.Report{Source: "stdin", Visual: "a<CR><LF>b"},
			want:   "a<CR><LF>b\n",
		},
		{
			name:   "diff",
			report: model.Report{Source: "f", Target: lineending.LF, Diff: "- a<CR>\n+ a<LF>\n"},
			want:   "- a<CR>\n+ a<LF>\n",
		},
		{
			name:   "streamed conversion prints nothing more",
			report: model.Report{Source: "f", Target: lineending.LF},
			want:   "",
		},
		{
			name:   "written file prints nothing to stdout",
			report: model.Report{Source: "f", Target: lineending.LF, Written: true},
			want:   "",
		},
		{
			name:   "message only",
			report: model.Report{Message: "Source is empty. Nothing to process."},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			PrintReport(&out, tt.report)
			require.Equal(t, tt.want, out.String())
		})
	}
}
