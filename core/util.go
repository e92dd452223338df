package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1

	tapeRowWidth = 16
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

type instTracer struct{}

// NewInstTracer returns a hook that traces every instruction a core executes.
func NewInstTracer() sim.Hook {
	return instTracer{}
}

func (instTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosInstExec {
		return
	}

	rec, ok := ctx.Item.(InstRecord)
	if !ok {
		return
	}

	at := rec.Inst.Position()
	Trace("Inst",
		"PC", rec.PC,
		"Inst", rec.Inst.String(),
		"Line", at.Line,
		"Col", at.Col,
		"Cursor", rec.Cursor,
		"Cell", rec.Cell,
	)
}

// PrintTape renders the part of the tape that holds non-zero cells or the
// cursor, sixteen cells per row. The cursor cell is bracketed.
func PrintTape(w io.Writer, s TapeSnapshot) {
	lo, hi := s.Cursor, s.Cursor
	for i, v := range s.Tape {
		if v == 0 {
			continue
		}
		lo = min(lo, i)
		hi = max(hi, i)
	}

	lo -= lo % tapeRowWidth
	hi -= hi % tapeRowWidth

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Tape (cursor %d, pc %d)", s.Cursor, s.PC))

	header := table.Row{"Addr"}
	for i := 0; i < tapeRowWidth; i++ {
		header = append(header, fmt.Sprintf("+%X", i))
	}
	t.AppendHeader(header)

	for base := lo; base <= hi; base += tapeRowWidth {
		row := table.Row{fmt.Sprintf("%03X", base)}
		for i := base; i < base+tapeRowWidth; i++ {
			cell := fmt.Sprintf("%d", s.Tape[i])
			if i == s.Cursor {
				cell = "[" + cell + "]"
			}
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	fmt.Fprintln(w, t.Render())
}

func LogState(state *tapeState) {
	slog.Debug("StateCheckpoint",
		"PC", state.PC,
		"Cursor", state.Cursor,
		"Cell", state.cell(),
		"OutputLen", len(state.Output),
	)
}
