package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfir/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine sim.Engine
	freq   sim.Freq
	input  core.LineReader
	hooks  []sim.Hook
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithInput sets the reader that ReadIn instructions consume.
func (b DriverBuilder) WithInput(input core.LineReader) DriverBuilder {
	b.input = input
	return b
}

// WithHook attaches a hook to the core.
func (b DriverBuilder) WithHook(hook sim.Hook) DriverBuilder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	cb := core.NewBuilder().
		WithEngine(b.engine).
		WithInput(b.input)
	if b.freq > 0 {
		cb = cb.WithFreq(b.freq)
	}

	c := cb.Build(name + ".Core")

	for _, hook := range b.hooks {
		c.AcceptHook(hook)
	}

	return &driverImpl{
		engine: b.engine,
		core:   c,
	}
}
