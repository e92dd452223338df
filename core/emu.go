package core

import (
	"fmt"
	"unicode/utf8"

	"github.com/sarchlab/bfir/ir"
)

const (
	// TapeLen is the number of cells on the tape.
	TapeLen = 512
	// StartCursor is where the cursor sits when a run begins.
	StartCursor = 256
)

// RuntimeErrorKind classifies faults raised while running a program.
type RuntimeErrorKind int

const (
	// PointerOverflow is raised when a move would leave the tape.
	PointerOverflow RuntimeErrorKind = iota
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case PointerOverflow:
		return "pointer overflow"
	default:
		panic("invalid runtime error kind")
	}
}

// RuntimeError aborts a run. Pos is the position of the faulting instruction.
type RuntimeError struct {
	Kind   RuntimeErrorKind
	Pos    ir.Pos
	PC     int
	Cursor int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s at %s (cursor %d)", e.Kind, e.Pos, e.Cursor)
}

type tapeState struct {
	PC     int
	Cursor int
	Tape   [TapeLen]uint8
	Output []rune
}

func newTapeState() tapeState {
	return tapeState{Cursor: StartCursor}
}

func (s *tapeState) cell() uint8 {
	return s.Tape[s.Cursor]
}

type instEmulator struct {
	input LineReader
}

// RunInst executes the instruction at state.PC and moves the PC to the next
// instruction to run. The state is left untouched when a fault is returned.
func (i instEmulator) RunInst(prog ir.Program, state *tapeState) error {
	switch inst := prog.Insts[state.PC].(type) {
	case ir.AddConst:
		state.Tape[state.Cursor] += inst.N
	case ir.SubConst:
		state.Tape[state.Cursor] -= inst.N
	case ir.MoveRight:
		return i.runMoveRight(inst, state)
	case ir.MoveLeft:
		return i.runMoveLeft(inst, state)
	case ir.JumpIfZero:
		if state.cell() == 0 {
			state.PC = i.jumpTarget(prog, state.PC)
		}
	case ir.JumpIfNotZero:
		// Lands on the matching JumpIfZero after the increment below.
		state.PC = i.jumpTarget(prog, state.PC) - 1
	case ir.ReadIn:
		state.Tape[state.Cursor] = i.readCell()
	case ir.WriteOut:
		state.Output = append(state.Output, rune(state.cell()))
	default:
		panic(fmt.Sprintf("unknown instruction '%v' at PC %d", inst, state.PC))
	}

	state.PC++

	return nil
}

func (i instEmulator) runMoveRight(inst ir.MoveRight, state *tapeState) error {
	next := state.Cursor + int(inst.N)
	if next >= TapeLen {
		return i.overflow(inst, state)
	}

	state.Cursor = next
	state.PC++

	return nil
}

func (i instEmulator) runMoveLeft(inst ir.MoveLeft, state *tapeState) error {
	if state.Cursor < int(inst.N) {
		return i.overflow(inst, state)
	}

	state.Cursor -= int(inst.N)
	state.PC++

	return nil
}

func (i instEmulator) overflow(inst ir.Instruction, state *tapeState) error {
	return &RuntimeError{
		Kind:   PointerOverflow,
		Pos:    inst.Position(),
		PC:     state.PC,
		Cursor: state.Cursor,
	}
}

func (i instEmulator) jumpTarget(prog ir.Program, pc int) int {
	target, ok := prog.Jumps.Target(pc)
	if !ok {
		panic(fmt.Sprintf("no jump target for bracket at PC %d", pc))
	}

	return target
}

// readCell consumes one line of input. Only its first character is kept;
// a line that does not start with valid UTF-8 yields its first raw byte.
func (i instEmulator) readCell() uint8 {
	if i.input == nil {
		return 0
	}

	line, ok := i.input.ReadLine()
	if !ok {
		return 0
	}

	ch, size := utf8.DecodeRuneInString(line)
	if ch == utf8.RuneError && size == 1 {
		return line[0]
	}

	return uint8(ch)
}
