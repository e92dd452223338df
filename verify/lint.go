package verify

import (
	"fmt"

	"github.com/sarchlab/bfir/core"
	"github.com/sarchlab/bfir/ir"
)

// RunLint performs static lint checks on a program.
// It validates structure (STRUCT) and the cursor range of the straight-line
// prefix (RANGE). Returns a list of issues found, or empty list if no
// issues.
func RunLint(prog ir.Program) []Issue {
	var issues []Issue

	if len(prog.Jumps) != len(prog.Insts) {
		return append(issues, Issue{
			Type:    IssueStruct,
			PC:      -1,
			Message: fmt.Sprintf("jump table has %d slots for %d instructions", len(prog.Jumps), len(prog.Insts)),
			Details: map[string]interface{}{
				"slots": len(prog.Jumps),
				"insts": len(prog.Insts),
			},
		})
	}

	for pc, inst := range prog.Insts {
		issues = append(issues, checkDelta(pc, inst)...)
		issues = append(issues, checkJump(prog, pc, inst)...)
	}

	issues = append(issues, checkRange(prog)...)

	return issues
}

func structIssue(pc int, inst ir.Instruction, format string, args ...interface{}) Issue {
	return Issue{
		Type:    IssueStruct,
		PC:      pc,
		Pos:     inst.Position(),
		Message: fmt.Sprintf(format, args...),
	}
}

func checkDelta(pc int, inst ir.Instruction) []Issue {
	var n uint8

	switch inst := inst.(type) {
	case ir.AddConst:
		n = inst.N
	case ir.SubConst:
		n = inst.N
	case ir.MoveRight:
		n = inst.N
	case ir.MoveLeft:
		n = inst.N
	default:
		return nil
	}

	if n != 0 {
		return nil
	}

	return []Issue{structIssue(pc, inst, "%s has a zero delta", inst)}
}

func checkJump(prog ir.Program, pc int, inst ir.Instruction) []Issue {
	target := prog.Jumps[pc]

	if !ir.IsBracket(inst) {
		if target != ir.NoTarget {
			return []Issue{structIssue(pc, inst, "%s has jump target %d", inst, target)}
		}
		return nil
	}

	if target == ir.NoTarget {
		return []Issue{structIssue(pc, inst, "%s has no partner", inst)}
	}

	if target < 0 || target >= len(prog.Insts) {
		return []Issue{structIssue(pc, inst, "%s jumps out of the program to %d", inst, target)}
	}

	var issues []Issue

	partner := prog.Insts[target]
	switch inst.(type) {
	case ir.JumpIfZero:
		if _, ok := partner.(ir.JumpIfNotZero); !ok {
			issues = append(issues, structIssue(pc, inst, "JZ is paired with %s at %d", partner, target))
		}
		if target < pc {
			issues = append(issues, structIssue(pc, inst, "JZ is paired backwards with %d", target))
		}
	case ir.JumpIfNotZero:
		if _, ok := partner.(ir.JumpIfZero); !ok {
			issues = append(issues, structIssue(pc, inst, "JNZ is paired with %s at %d", partner, target))
		}
		if target > pc {
			issues = append(issues, structIssue(pc, inst, "JNZ is paired forwards with %d", target))
		}
	}

	if back := prog.Jumps[target]; back != pc {
		issues = append(issues, structIssue(pc, inst,
			"jump table is not symmetric: %d -> %d -> %d", pc, target, back))
	}

	return issues
}

func checkRange(prog ir.Program) []Issue {
	cursor := core.StartCursor

	for pc, inst := range prog.Insts {
		switch inst := inst.(type) {
		case ir.JumpIfZero, ir.JumpIfNotZero:
			return nil
		case ir.MoveRight:
			cursor += int(inst.N)
		case ir.MoveLeft:
			cursor -= int(inst.N)
		default:
			continue
		}

		if cursor < 0 || cursor >= core.TapeLen {
			return []Issue{{
				Type:    IssueRange,
				PC:      pc,
				Pos:     inst.Position(),
				Message: fmt.Sprintf("%s moves the cursor to %d, off the tape", inst, cursor),
				Details: map[string]interface{}{"cursor": cursor},
			}}
		}
	}

	return nil
}
