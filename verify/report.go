package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

// LayoutRow is the encoding of one instruction.
type LayoutRow struct {
	Block  string
	Index  int
	Inst   string
	Family isa.Family
	Bytes  int
	Wait   bool
	Offset int
}

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Function     string
	LintIssues   []Issue
	StructIssues []Issue
	ClassIssues  []Issue
	Layout       []LayoutRow
	TotalBytes   int
	WaitCount    int
}

// GenerateReport lints fn and lays out its instructions back to back.
// Instructions that cannot be classified are reported by lint and left out of
// the layout.
func GenerateReport(fn *instr.Function, ri regs.Info) *VerificationReport {
	if ri == nil {
		ri = fn.Regs
	}

	report := &VerificationReport{
		Function:   fn.Name,
		LintIssues: RunLint(fn, ri),
	}

	for _, issue := range report.LintIssues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.ClassIssues = append(report.ClassIssues, issue)
		}
	}

	offset := 0
	for _, b := range fn.Blocks {
		for i, in := range b.Insts {
			d, err := isa.Describe(in.Opcode, in.HasLiteral())
			if err != nil {
				continue
			}

			report.Layout = append(report.Layout, LayoutRow{
				Block:  b.Name,
				Index:  i,
				Inst:   in.Format(ri),
				Family: d.Family,
				Bytes:  d.Bytes,
				Wait:   d.WaitRequired,
				Offset: offset,
			})
			offset += d.Bytes
			if d.WaitRequired {
				report.WaitCount++
			}
		}
	}
	report.TotalBytes = offset

	return report
}

// OK reports whether lint found nothing.
func (r *VerificationReport) OK() bool {
	return len(r.LintIssues) == 0
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "LOWERING REPORT: %s\n", r.Function)
	fmt.Fprintln(w, separator)

	layout := table.NewWriter()
	layout.SetTitle("Layout")
	layout.AppendHeader(table.Row{"Offset", "Block", "#", "Instruction", "Family", "Bytes", "Wait"})
	for _, row := range r.Layout {
		wait := ""
		if row.Wait {
			wait = "yes"
		}
		layout.AppendRow(table.Row{
			fmt.Sprintf("0x%04x", row.Offset),
			row.Block,
			row.Index,
			row.Inst,
			row.Family.String(),
			row.Bytes,
			wait,
		})
	}
	layout.AppendFooter(table.Row{"", "", "", "", "Total", r.TotalBytes, r.WaitCount})
	fmt.Fprintln(w, layout.Render())

	fmt.Fprintln(w)
	if r.OK() {
		fmt.Fprintln(w, "Lint: no issues")
		return
	}

	fmt.Fprintf(w, "Lint: %d issues (%d STRUCT, %d CLASS)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.ClassIssues))
	for _, issue := range r.LintIssues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", cerr)
		}
	}()

	r.WriteReport(file)
	return nil
}
