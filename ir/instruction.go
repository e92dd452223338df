// Package ir defines the instruction set that Brainfuck source compiles to and
// the builder that produces it.
package ir

import "fmt"

// Pos is the source position of the character that produced an instruction.
// Lines and columns are 1-indexed.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Col)
}

// Instruction is one of the eight instruction variants. The set is closed:
// only types in this package implement it.
type Instruction interface {
	fmt.Stringer

	// Position returns where the instruction came from in the source.
	Position() Pos

	isInstruction()
}

// AddConst adds N to the current cell, modulo 256.
type AddConst struct {
	N  uint8
	At Pos
}

// SubConst subtracts N from the current cell, modulo 256.
type SubConst struct {
	N  uint8
	At Pos
}

// MoveRight moves the cursor N cells to the right.
type MoveRight struct {
	N  uint8
	At Pos
}

// MoveLeft moves the cursor N cells to the left.
type MoveLeft struct {
	N  uint8
	At Pos
}

// JumpIfZero opens a loop. Its partner is found in the jump table.
type JumpIfZero struct {
	At Pos
}

// JumpIfNotZero closes a loop. Its partner is found in the jump table.
type JumpIfNotZero struct {
	At Pos
}

// ReadIn stores one character of input into the current cell.
type ReadIn struct {
	At Pos
}

// WriteOut appends the current cell to the output.
type WriteOut struct {
	At Pos
}

func (i AddConst) Position() Pos      { return i.At }
func (i SubConst) Position() Pos      { return i.At }
func (i MoveRight) Position() Pos     { return i.At }
func (i MoveLeft) Position() Pos      { return i.At }
func (i JumpIfZero) Position() Pos    { return i.At }
func (i JumpIfNotZero) Position() Pos { return i.At }
func (i ReadIn) Position() Pos        { return i.At }
func (i WriteOut) Position() Pos      { return i.At }

func (AddConst) isInstruction()      {}
func (SubConst) isInstruction()      {}
func (MoveRight) isInstruction()     {}
func (MoveLeft) isInstruction()      {}
func (JumpIfZero) isInstruction()    {}
func (JumpIfNotZero) isInstruction() {}
func (ReadIn) isInstruction()        {}
func (WriteOut) isInstruction()      {}

func (i AddConst) String() string    { return fmt.Sprintf("ADD %d", i.N) }
func (i SubConst) String() string    { return fmt.Sprintf("SUB %d", i.N) }
func (i MoveRight) String() string   { return fmt.Sprintf("NEXT %d", i.N) }
func (i MoveLeft) String() string    { return fmt.Sprintf("PREV %d", i.N) }
func (JumpIfZero) String() string    { return "JZ" }
func (JumpIfNotZero) String() string { return "JNZ" }
func (ReadIn) String() string        { return "READ" }
func (WriteOut) String() string      { return "WRITE" }

// IsBracket reports whether inst is one of the two loop markers.
func IsBracket(inst Instruction) bool {
	switch inst.(type) {
	case JumpIfZero, JumpIfNotZero:
		return true
	default:
		return false
	}
}
