package ir

import "fmt"

// CompileErrorKind tells which bracket rule a source text broke.
type CompileErrorKind int

const (
	// LeftBracketNotClosed is reported when a '[' has no matching ']'.
	LeftBracketNotClosed CompileErrorKind = iota
	// RightBracketNotExpected is reported when a ']' has no open '['.
	RightBracketNotExpected
)

func (k CompileErrorKind) String() string {
	switch k {
	case LeftBracketNotClosed:
		return "left bracket is not closed"
	case RightBracketNotExpected:
		return "right bracket is not expected"
	default:
		panic("invalid compile error kind")
	}
}

// CompileError is returned by Build when brackets do not balance.
type CompileError struct {
	Kind CompileErrorKind
	Pos  Pos
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
}

type openBracket struct {
	index int
	pos   Pos
}

// Build compiles source text into a program. Characters that are not
// instructions are skipped as comments.
//
// An unmatched ']' is reported at its own position. Unclosed '[' are
// reported at the first one that was left open, not the last.
func Build(source string) (Program, error) {
	var (
		insts []Instruction
		stack []openBracket
		pairs [][2]int
	)

	pos := Pos{Line: 1, Col: 0}

	for _, ch := range source {
		pos.Col++

		switch ch {
		case '+':
			insts = append(insts, AddConst{N: 1, At: pos})
		case '-':
			insts = append(insts, SubConst{N: 1, At: pos})
		case '>':
			insts = append(insts, MoveRight{N: 1, At: pos})
		case '<':
			insts = append(insts, MoveLeft{N: 1, At: pos})
		case '.':
			insts = append(insts, WriteOut{At: pos})
		case ',':
			insts = append(insts, ReadIn{At: pos})
		case '[':
			stack = append(stack, openBracket{index: len(insts), pos: pos})
			insts = append(insts, JumpIfZero{At: pos})
		case ']':
			if len(stack) == 0 {
				return Program{}, &CompileError{
					Kind: RightBracketNotExpected,
					Pos:  pos,
				}
			}

			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			pairs = append(pairs, [2]int{open.index, len(insts)})
			insts = append(insts, JumpIfNotZero{At: pos})
		case '\n':
			pos.Col = 0
			pos.Line++
		}
	}

	if len(stack) > 0 {
		return Program{}, &CompileError{
			Kind: LeftBracketNotClosed,
			Pos:  stack[0].pos,
		}
	}

	jumps := newJumpTable(len(insts))
	for _, p := range pairs {
		jumps[p[0]] = p[1]
		jumps[p[1]] = p[0]
	}

	return Program{Insts: insts, Jumps: jumps}, nil
}
