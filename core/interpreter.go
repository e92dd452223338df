package core

import (
	"log/slog"
	"strings"

	"github.com/sarchlab/bfir/ir"
)

// Result is what a successful run produces.
type Result struct {
	Output []rune

	// Cycles counts executed instructions. It is only filled in by the
	// simulated path.
	Cycles uint64
}

func (r Result) String() string {
	var sb strings.Builder
	for _, ch := range r.Output {
		sb.WriteRune(ch)
	}

	return sb.String()
}

// TapeSnapshot is a copy of the machine state at the end of a run.
type TapeSnapshot struct {
	PC     int
	Cursor int
	Tape   [TapeLen]uint8
}

func (s *tapeState) snapshot() TapeSnapshot {
	return TapeSnapshot{PC: s.PC, Cursor: s.Cursor, Tape: s.Tape}
}

// Interpreter runs programs directly, without a simulation engine. Every call
// to Run starts from a fresh tape.
type Interpreter struct {
	emu  instEmulator
	last TapeSnapshot
}

// NewInterpreter creates an interpreter that reads input from in. A nil in
// behaves as if no input remains.
func NewInterpreter(in LineReader) *Interpreter {
	return &Interpreter{emu: instEmulator{input: in}}
}

// Run executes prog until it ends or faults. On a fault, output produced so
// far is discarded and only the error is returned.
func (it *Interpreter) Run(prog ir.Program) ([]rune, error) {
	state := newTapeState()
	defer func() { it.last = state.snapshot() }()

	slog.Debug("RunStart", "Insts", prog.Len())

	for state.PC < prog.Len() {
		if err := it.emu.RunInst(prog, &state); err != nil {
			slog.Debug("RunFault", "Error", err)
			return nil, err
		}
	}

	LogState(&state)

	return state.Output, nil
}

// Snapshot returns the state the last run ended in.
func (it *Interpreter) Snapshot() TapeSnapshot {
	return it.last
}

// Run executes prog on a fresh interpreter that reads from in.
func Run(prog ir.Program, in LineReader) ([]rune, error) {
	return NewInterpreter(in).Run(prog)
}
