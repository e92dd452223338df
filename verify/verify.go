// Package verify provides static checks for compiled programs.
//
// Two kinds of issues are reported:
//
//  1. STRUCT: the program breaks an invariant the interpreter relies on. The
//     jump table must have one slot per instruction, every bracket must have
//     a partner of the opposite kind placed on the correct side, the table
//     must be symmetric, and no arithmetic or move may carry a zero delta.
//     Programs produced by ir.Build never have STRUCT issues; hand-built or
//     transformed programs may.
//
//  2. RANGE: a move in the straight-line prefix of the program, before the
//     first loop, is certain to push the cursor off the tape. Once execution
//     enters a loop the cursor is no longer known statically and checking
//     stops.
//
// # Usage Example
//
//	prog, err := ir.Build(source)
//	if err != nil {
//	    return err
//	}
//
//	report := verify.GenerateReport(prog)
//	if len(report.Issues) > 0 {
//	    report.WriteReport(os.Stderr)
//	}
package verify

import "github.com/sarchlab/bfir/ir"

type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Broken program invariant
	IssueRange  IssueType = "RANGE"  // Move certain to leave the tape
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	PC      int    // Instruction index or -1
	Pos     ir.Pos // Zero when PC is -1
	Message string
	Details map[string]interface{}
}
