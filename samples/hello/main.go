package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfir/api"
	"github.com/sarchlab/bfir/core"
	"github.com/sarchlab/bfir/ir"
	"github.com/tebeka/atexit"
)

//go:embed hello.bf
var helloProgram string

func hello(driver api.Driver) {
	prog, err := ir.Build(helloProgram)
	if err != nil {
		panic(err)
	}

	driver.MapProgram(prog)

	res, err := driver.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(2)
	}

	fmt.Print(res)
	fmt.Printf("cycles: %d\n", res.Cycles)
}

func main() {
	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithInput(core.NewLineReader(os.Stdin)).
		Build("Driver")

	hello(driver)

	atexit.Exit(0)
}
