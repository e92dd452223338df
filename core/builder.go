package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	input  LineReader
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithInput sets where ReadIn instructions take their input from.
func (b Builder) WithInput(input LineReader) Builder {
	b.input = input
	return b
}

func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	c := &Core{
		emu:   instEmulator{input: b.input},
		state: newTapeState(),
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
