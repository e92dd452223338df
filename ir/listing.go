package ir

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteListing renders the program as a table of instructions with their
// source positions and jump targets.
func WriteListing(w io.Writer, prog Program) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Program (%d instructions)", prog.Len()))
	t.AppendHeader(table.Row{"PC", "Inst", "Line", "Col", "Target"})

	for pc, inst := range prog.Insts {
		target := ""
		if j, ok := prog.Jumps.Target(pc); ok {
			target = fmt.Sprintf("%d", j)
		}

		at := inst.Position()
		t.AppendRow(table.Row{pc, inst.String(), at.Line, at.Col, target})
	}

	fmt.Fprintln(w, t.Render())
}
