package core

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/bfir/ir"
)

var _ = Describe("InstEmulator", func() {
	var (
		ie instEmulator
		s  tapeState
	)

	at := ir.Pos{Line: 3, Col: 7}

	single := func(inst ir.Instruction) ir.Program {
		return ir.Program{
			Insts: []ir.Instruction{inst},
			Jumps: ir.JumpTable{ir.NoTarget},
		}
	}

	BeforeEach(func() {
		ie = instEmulator{}
		s = newTapeState()
	})

	It("should start with the cursor in the middle of a zeroed tape", func() {
		Expect(s.Cursor).To(Equal(256))
		Expect(s.PC).To(Equal(0))
		Expect(s.Tape).To(Equal([TapeLen]uint8{}))
	})

	Context("Arithmetic Instructions", func() {
		It("should add to the current cell", func() {
			s.Tape[256] = 5
			Expect(ie.RunInst(single(ir.AddConst{N: 3, At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(8)))
			Expect(s.PC).To(Equal(1))
		})

		It("should wrap around on overflow", func() {
			s.Tape[256] = 255
			Expect(ie.RunInst(single(ir.AddConst{N: 1, At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(0)))
		})

		It("should wrap around on underflow", func() {
			Expect(ie.RunInst(single(ir.SubConst{N: 1, At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(255)))
		})
	})

	Context("Move Instructions", func() {
		It("should move right", func() {
			Expect(ie.RunInst(single(ir.MoveRight{N: 2, At: at}), &s)).To(Succeed())
			Expect(s.Cursor).To(Equal(258))
			Expect(s.PC).To(Equal(1))
		})

		It("should fault when moving onto the end of the tape", func() {
			s.Cursor = TapeLen - 1
			err := ie.RunInst(single(ir.MoveRight{N: 1, At: at}), &s)

			Expect(err).To(Equal(&RuntimeError{
				Kind:   PointerOverflow,
				Pos:    at,
				PC:     0,
				Cursor: TapeLen - 1,
			}))
			Expect(s.Cursor).To(Equal(TapeLen - 1))
			Expect(s.PC).To(Equal(0))
		})

		It("should move left down to cell zero", func() {
			s.Cursor = 1
			Expect(ie.RunInst(single(ir.MoveLeft{N: 1, At: at}), &s)).To(Succeed())
			Expect(s.Cursor).To(Equal(0))
		})

		It("should fault when moving left past cell zero", func() {
			s.Cursor = 1
			err := ie.RunInst(single(ir.MoveLeft{N: 2, At: at}), &s)

			Expect(err).To(MatchError("pointer overflow at line 3, col 7 (cursor 1)"))
			Expect(s.Cursor).To(Equal(1))
		})
	})

	Context("Jump Instructions", func() {
		var loop ir.Program

		BeforeEach(func() {
			loop = ir.Program{
				Insts: []ir.Instruction{
					ir.JumpIfZero{At: at},
					ir.SubConst{N: 1, At: at},
					ir.JumpIfNotZero{At: at},
				},
				Jumps: ir.JumpTable{2, ir.NoTarget, 0},
			}
		})

		It("should skip past the loop when the cell is zero", func() {
			Expect(ie.RunInst(loop, &s)).To(Succeed())
			Expect(s.PC).To(Equal(3))
		})

		It("should enter the loop when the cell is not zero", func() {
			s.Tape[256] = 1
			Expect(ie.RunInst(loop, &s)).To(Succeed())
			Expect(s.PC).To(Equal(1))
		})

		It("should jump back to the loop head", func() {
			s.PC = 2
			Expect(ie.RunInst(loop, &s)).To(Succeed())
			Expect(s.PC).To(Equal(0))
		})

		It("should panic on a bracket without a partner", func() {
			loop.Jumps = ir.JumpTable{ir.NoTarget, ir.NoTarget, ir.NoTarget}
			s.PC = 2
			Expect(func() { _ = ie.RunInst(loop, &s) }).To(Panic())
		})
	})

	Context("IO Instructions", func() {
		It("should write the cell as a Latin-1 character", func() {
			s.Tape[256] = 0xE9
			Expect(ie.RunInst(single(ir.WriteOut{At: at}), &s)).To(Succeed())
			Expect(s.Output).To(Equal([]rune{'é'}))
		})

		It("should read the first character of a line", func() {
			ie.input = NewLineReader(strings.NewReader("hello\nworld\n"))

			Expect(ie.RunInst(single(ir.ReadIn{At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8('h')))

			s.PC = 0
			Expect(ie.RunInst(single(ir.ReadIn{At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8('w')))
		})

		It("should truncate a wide character to its low byte", func() {
			ie.input = NewLineReader(strings.NewReader("ŉ\n"))

			Expect(ie.RunInst(single(ir.ReadIn{At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(0x49)))
		})

		It("should keep the first raw byte of invalid UTF-8", func() {
			ie.input = NewLineReader(strings.NewReader("\xffz\n"))

			Expect(ie.RunInst(single(ir.ReadIn{At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(0xFF)))
		})

		It("should store zero for an empty line", func() {
			ie.input = NewLineReader(strings.NewReader("\n"))
			s.Tape[256] = 9

			Expect(ie.RunInst(single(ir.ReadIn{At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(0)))
		})

		It("should store zero when input is exhausted", func() {
			ie.input = NewLineReader(strings.NewReader(""))
			s.Tape[256] = 9

			Expect(ie.RunInst(single(ir.ReadIn{At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(0)))
		})

		It("should store zero without an input", func() {
			s.Tape[256] = 9

			Expect(ie.RunInst(single(ir.ReadIn{At: at}), &s)).To(Succeed())
			Expect(s.Tape[256]).To(Equal(uint8(0)))
		})
	})
})
