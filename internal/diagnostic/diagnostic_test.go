package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/colt-lang/colt/internal/position"
)

func sampleSource() *position.SourceInfo {
	sf := position.NewSourceFile("main.ct", "var a = 1 / 0;")
	return position.NewSourceInfo(sf, sf.SpanOf(8, 13))
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Error("first", nil, 0)
	c.Warn("second", sampleSource(), 3)
	c.Message("third", nil, 0)
	c.Error("fourth", nil, 0)

	counts := c.Counts()
	if counts.Errors != 2 || counts.Warnings != 1 || counts.Messages != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	if !c.HasErrors() {
		t.Error("HasErrors() = false")
	}
	if len(c.Errors()) != 2 || len(c.Warnings()) != 1 {
		t.Errorf("Errors() = %d, Warnings() = %d", len(c.Errors()), len(c.Warnings()))
	}
	if got := c.Warnings()[0].String(); got != "warning: (W3) second" {
		t.Errorf("String() = %q", got)
	}

	replay := NewCollector()
	c.Replay(replay)
	if replay.Counts() != counts {
		t.Errorf("Replay counts = %+v, want %+v", replay.Counts(), counts)
	}

	c.Clear()
	if c.HasErrors() || len(c.Diagnostics()) != 0 {
		t.Error("Clear() left diagnostics behind")
	}
}

func TestLimiter(t *testing.T) {
	tests := []struct {
		name      string
		maxErrors uint64
		reports   int
		forwarded []string
	}{
		{"under limit", 3, 2, []string{"e", "e"}},
		{"over limit", 2, 5, []string{"e", "e", "No more errors will be reported."}},
		{"no limit", NoLimit, 4, []string{"e", "e", "e", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector()
			l := NewLimiter(c, tt.maxErrors, NoLimit, NoLimit)
			for i := 0; i < tt.reports; i++ {
				l.Error("e", nil, 0)
			}
			got := c.Diagnostics()
			if len(got) != len(tt.forwarded) {
				t.Fatalf("forwarded %d reports, want %d", len(got), len(tt.forwarded))
			}
			for i, d := range got {
				if d.Message != tt.forwarded[i] {
					t.Errorf("report %d = %q, want %q", i, d.Message, tt.forwarded[i])
				}
			}
			if l.Counts().Errors != uint64(tt.reports) {
				t.Errorf("limiter counted %d, want %d", l.Counts().Errors, tt.reports)
			}
		})
	}
}

func TestFilterAndPromotion(t *testing.T) {
	c := NewCollector()
	f := NewFilter(NewWarningsAsErrors(c), nil, IgnoreNumbers(7), nil)
	f.Warn("ignored", nil, 7)
	f.Warn("promoted", nil, 8)
	f.Message("kept", nil, 0)

	if c.Counts().Errors != 1 || c.Counts().Warnings != 0 || c.Counts().Messages != 1 {
		t.Errorf("unexpected counts %+v", c.Counts())
	}
	if f.Counts().Warnings != 2 {
		t.Errorf("filter counted %d warnings, want 2", f.Counts().Warnings)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	c.Error("Integral division by zero is not allowed!", sampleSource(), 0)
	c.Warn("numbered", nil, 12)

	out := buf.String()
	want := "main.ct:1:9: error: Integral division by zero is not allowed!\n" +
		" 1 | var a = 1 / 0;\n" +
		"   |         ~~~~^\n" +
		"warning: (W12) numbered\n"
	if out != want {
		t.Errorf("console output =\n%s\nwant\n%s", out, want)
	}
	if c.Counts().Errors != 1 || c.Counts().Warnings != 1 {
		t.Errorf("unexpected counts %+v", c.Counts())
	}
}

func TestConsoleColor(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, true).Error("boom", sampleSource(), 0)
	if !strings.Contains(buf.String(), colorBrightR+"1 / 0"+colorReset) {
		t.Errorf("expression not highlighted: %q", buf.String())
	}
}

func TestBuilderAndFormat(t *testing.T) {
	c := NewCollector()
	NewDiagnostic().Warning().Number(2).Message("late").Emit(c)
	NewDiagnostic().Error().Message("early").Source(sampleSource()).Emit(c)

	diags := append([]Diagnostic(nil), c.Diagnostics()...)
	SortDiagnostics(diags)
	if diags[0].Message != "early" {
		t.Errorf("sorted first = %q, want %q", diags[0].Message, "early")
	}
	out := FormatDiagnostics(diags)
	if !strings.HasSuffix(out, "Found 1 error(s), 1 warning(s).\n") {
		t.Errorf("unexpected summary: %q", out)
	}
}

func TestSortKeepsNotesWithTheirLead(t *testing.T) {
	sf := position.NewSourceFile("main.ct", "{ let a = 1;\nb;")
	opened := position.NewSourceInfo(sf, sf.SpanOf(0, 1))
	late := position.NewSourceInfo(sf, sf.SpanOf(13, 14))

	c := NewCollector()
	NewDiagnostic().Error().Message("Variable 'b' does not exist!").Source(late).Emit(c)
	NewDiagnostic().Error().Message("Unclosed curly bracket delimiter!").Source(late).Emit(c)
	NewDiagnostic().Note().Message("Curly bracket opened here.").Source(opened).Emit(c)
	NewDiagnostic().Warning().Message("early").Source(opened).Emit(c)

	diags := append([]Diagnostic(nil), c.Diagnostics()...)
	SortDiagnostics(diags)
	want := []string{
		"early",
		"Variable 'b' does not exist!",
		"Unclosed curly bracket delimiter!",
		"Curly bracket opened here.",
	}
	for i, w := range want {
		if diags[i].Message != w {
			t.Errorf("diagnostic %d = %q, want %q", i, diags[i].Message, w)
		}
	}
}
