// Package api defines the driver API that runs compiled programs on a
// simulated core.
package api

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfir/core"
	"github.com/sarchlab/bfir/ir"
)

// ErrNoProgram is returned by Run when no program has been mapped.
var ErrNoProgram = errors.New("no program mapped")

// Driver provides the interface to run programs on a core.
type Driver interface {
	// MapProgram loads a program into the core. The core's tape is reset.
	MapProgram(prog ir.Program)

	// Run runs the mapped program to completion. It returns the output, or
	// the fault that stopped the program. A driver runs once; build a new
	// one on a fresh engine for the next program.
	Run() (core.Result, error)

	// Core returns the core that the driver runs programs on.
	Core() *core.Core
}

type driverImpl struct {
	engine sim.Engine
	core   *core.Core
	mapped bool
}

// MapProgram dispatches a program to the core.
func (d *driverImpl) MapProgram(prog ir.Program) {
	d.core.MapProgram(prog)
	d.mapped = true
}

// Run runs all the instructions of the mapped program.
func (d *driverImpl) Run() (core.Result, error) {
	if !d.mapped {
		return core.Result{}, ErrNoProgram
	}

	d.core.TickNow()
	if err := d.engine.Run(); err != nil {
		return core.Result{}, fmt.Errorf("engine: %w", err)
	}

	return d.core.Result()
}

func (d *driverImpl) Core() *core.Core {
	return d.core
}

// RunSource compiles source and runs it on a fresh serial engine. Compile
// faults are returned before anything runs.
func RunSource(source string, in core.LineReader) (core.Result, error) {
	prog, err := ir.Build(source)
	if err != nil {
		return core.Result{}, err
	}

	driver := DriverBuilder{}.
		WithEngine(sim.NewSerialEngine()).
		WithFreq(1 * sim.GHz).
		WithInput(in).
		Build("Driver")

	driver.MapProgram(prog)

	return driver.Run()
}
