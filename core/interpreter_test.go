package core_test

import (
	"bytes"
	"errors"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/bfir/core"
	"github.com/sarchlab/bfir/ir"
)

const helloWorld = "++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.+++++++..+++.>++.<<+++++++++++++++.>.+++.------.--------.>+.>."

func mustBuild(source string) ir.Program {
	prog, err := ir.Build(source)
	Expect(err).NotTo(HaveOccurred())
	return prog
}

func runtimeError(err error) *core.RuntimeError {
	var re *core.RuntimeError
	Expect(errors.As(err, &re)).To(BeTrue())
	return re
}

var _ = Describe("Interpreter", func() {
	var (
		mockCtrl  *gomock.Controller
		mockInput *MockLineReader
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockInput = NewMockLineReader(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should print hello world", func() {
		out, err := core.Run(mustBuild(helloWorld), mockInput)

		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("Hello World!\n"))
	})

	It("should produce no output for an empty program", func() {
		out, err := core.Run(mustBuild(""), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
	})

	It("should wrap cells modulo 256", func() {
		source := strings.Repeat("+", 255) + "." + "+." + "-."

		out, err := core.Run(mustBuild(source), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]rune{255, 0, 255}))
	})

	It("should allow one move left from the start", func() {
		it := core.NewInterpreter(nil)

		_, err := it.Run(mustBuild("<"))

		Expect(err).NotTo(HaveOccurred())
		Expect(it.Snapshot().Cursor).To(Equal(255))
	})

	It("should fault when moving left past the tape start", func() {
		out, err := core.Run(mustBuild("+."+strings.Repeat("<", 257)), nil)

		Expect(out).To(BeNil())
		re := runtimeError(err)
		Expect(re.Kind).To(Equal(core.PointerOverflow))
		Expect(re.Pos).To(Equal(ir.Pos{Line: 1, Col: 259}))
		Expect(re.Cursor).To(Equal(0))
	})

	It("should fault when moving right past the tape end", func() {
		out, err := core.Run(mustBuild(strings.Repeat(">", 255)+"\n>>"), nil)

		Expect(out).To(BeNil())
		re := runtimeError(err)
		Expect(re.Kind).To(Equal(core.PointerOverflow))
		Expect(re.Pos).To(Equal(ir.Pos{Line: 2, Col: 1}))
		Expect(re.Cursor).To(Equal(core.TapeLen - 1))
	})

	It("should skip a loop on a zero cell", func() {
		out, err := core.Run(mustBuild("[.]+."), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]rune{1}))
	})

	It("should run nested loops", func() {
		// 3 * 4 = 12 in the neighbouring cell.
		out, err := core.Run(mustBuild("+++[>++++[>+<-]<-]>>."), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]rune{12}))
	})

	It("should read one line per read instruction", func() {
		gomock.InOrder(
			mockInput.EXPECT().ReadLine().Return("abc", true),
			mockInput.EXPECT().ReadLine().Return("", true),
			mockInput.EXPECT().ReadLine().Return("", false),
		)

		out, err := core.Run(mustBuild(",.+,.+,."), mockInput)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]rune{'a', 0, 0}))
	})

	It("should echo input until an empty line", func() {
		in := core.NewLineReader(strings.NewReader("x\ny\nz\n\n"))

		out, err := core.Run(mustBuild(",[.,]"), in)

		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("xyz"))
	})

	It("should read lines longer than the scanner buffer", func() {
		long := "x" + strings.Repeat("a", 70000)
		in := core.NewLineReader(strings.NewReader(long + "\nb\n"))

		out, err := core.Run(mustBuild(",.>,."), in)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]rune{'x', 'b'}))
	})

	It("should strip carriage returns and keep an unterminated last line", func() {
		in := core.NewLineReader(strings.NewReader("\r\nq"))

		out, err := core.Run(mustBuild(",.,.,."), in)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]rune{0, 'q', 0}))
	})

	It("should start every run from a fresh tape", func() {
		it := core.NewInterpreter(nil)
		prog := mustBuild("+>.<.")

		first, err := it.Run(prog)
		Expect(err).NotTo(HaveOccurred())
		second, err := it.Run(prog)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(first).To(Equal([]rune{0, 1}))
	})

	It("should print the tape around the cursor", func() {
		it := core.NewInterpreter(nil)
		_, err := it.Run(mustBuild("+++>++"))
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		core.PrintTape(&buf, it.Snapshot())

		Expect(buf.String()).To(ContainSubstring("[2]"))
		Expect(buf.String()).To(ContainSubstring("100"))
	})
})
