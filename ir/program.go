package ir

// NoTarget marks a jump table slot that does not belong to a bracket.
const NoTarget = -1

// JumpTable maps the index of each bracket instruction to the index of its
// partner. It has one slot per instruction; slots of non-bracket
// instructions hold NoTarget.
type JumpTable []int

func newJumpTable(n int) JumpTable {
	t := make(JumpTable, n)
	for i := range t {
		t[i] = NoTarget
	}

	return t
}

// Target returns the partner of the bracket at index i.
func (t JumpTable) Target(i int) (int, bool) {
	if i < 0 || i >= len(t) || t[i] == NoTarget {
		return 0, false
	}

	return t[i], true
}

// Pairs returns the matched (open, close) index pairs in order of the
// opening bracket.
func (t JumpTable) Pairs() [][2]int {
	var pairs [][2]int

	for i, j := range t {
		if j != NoTarget && i < j {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	return pairs
}

// Program is the output of the builder. It is immutable once built.
type Program struct {
	Insts []Instruction
	Jumps JumpTable
}

// Len returns the number of instructions.
func (p Program) Len() int {
	return len(p.Insts)
}
