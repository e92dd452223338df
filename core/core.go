package core

import (
	"errors"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfir/ir"
)

// HookPosInstExec marks when the core has executed an instruction. The hook
// item is an InstRecord.
var HookPosInstExec = &sim.HookPos{Name: "Inst Exec"}

// ErrNotFinished is returned by Result when the engine stopped before the
// program ran to completion.
var ErrNotFinished = errors.New("program has not finished")

// InstRecord describes one executed instruction.
type InstRecord struct {
	PC     int
	Inst   ir.Instruction
	Cursor int
	Cell   uint8
}

// Core runs a program on an akita engine, one instruction per cycle.
type Core struct {
	*sim.TickingComponent

	prog  ir.Program
	state tapeState
	emu   instEmulator

	cycles uint64
	done   bool
	err    error
}

// MapProgram sets the program that the core needs to run and resets the tape.
func (c *Core) MapProgram(prog ir.Program) {
	c.prog = prog
	c.state = newTapeState()
	c.cycles = 0
	c.done = false
	c.err = nil
}

// Tick runs the program for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.done {
		return false
	}

	if c.state.PC >= c.prog.Len() {
		c.finish(nil)
		return false
	}

	pc := c.state.PC
	inst := c.prog.Insts[pc]

	err := c.emu.RunInst(c.prog, &c.state)
	c.cycles++

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosInstExec,
		Item: InstRecord{
			PC:     pc,
			Inst:   inst,
			Cursor: c.state.Cursor,
			Cell:   c.state.cell(),
		},
	})

	if err != nil {
		c.finish(err)
		return false
	}

	if c.state.PC >= c.prog.Len() {
		c.finish(nil)
		return false
	}

	return true
}

func (c *Core) finish(err error) {
	c.done = true
	c.err = err

	if err == nil {
		LogState(&c.state)
	}

	Trace("Core",
		"Behavior", "Finish",
		"Name", c.Name(),
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Cycles", c.cycles,
		"Error", err,
	)
}

// Done reports whether the program has ended, normally or by a fault.
func (c *Core) Done() bool {
	return c.done
}

// Result returns the output of a finished run, or the fault that ended it.
func (c *Core) Result() (Result, error) {
	if c.err != nil {
		return Result{}, c.err
	}

	if !c.done {
		return Result{}, ErrNotFinished
	}

	return Result{Output: c.state.Output, Cycles: c.cycles}, nil
}

// Snapshot returns a copy of the core's current machine state.
func (c *Core) Snapshot() TapeSnapshot {
	return c.state.snapshot()
}
