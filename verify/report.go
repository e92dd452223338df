package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/bfir/ir"
)

// Report bundles the lint result of one program.
type Report struct {
	InstCount    int
	BracketPairs int
	Issues       []Issue
	StructIssues []Issue
	RangeIssues  []Issue
}

// GenerateReport runs lint on prog and categorizes the issues.
func GenerateReport(prog ir.Program) *Report {
	r := &Report{
		InstCount: prog.Len(),
		Issues:    RunLint(prog),
	}

	if len(prog.Jumps) == len(prog.Insts) {
		r.BracketPairs = len(prog.Jumps.Pairs())
	}

	for _, issue := range r.Issues {
		if issue.Type == IssueStruct {
			r.StructIssues = append(r.StructIssues, issue)
		} else {
			r.RangeIssues = append(r.RangeIssues, issue)
		}
	}

	return r
}

// OK reports whether lint found nothing.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// WriteReport writes a formatted report to a writer
func (r *Report) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "Program: %d instructions, %d loops\n", r.InstCount, r.BracketPairs)

	if r.OK() {
		fmt.Fprintln(w, "No lint issues found")
		return
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Lint: %d issues (%d STRUCT, %d RANGE)",
		len(r.Issues), len(r.StructIssues), len(r.RangeIssues)))
	t.AppendHeader(table.Row{"Type", "PC", "Line", "Col", "Message"})

	for _, issue := range r.Issues {
		if issue.PC < 0 {
			t.AppendRow(table.Row{issue.Type, "-", "-", "-", issue.Message})
			continue
		}
		t.AppendRow(table.Row{issue.Type, issue.PC, issue.Pos.Line, issue.Pos.Col, issue.Message})
	}

	fmt.Fprintln(w, t.Render())
}

// SaveReportToFile saves the report to a file
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
