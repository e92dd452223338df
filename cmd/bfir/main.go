// Command bfir compiles a Brainfuck source file and runs it, reading input
// lines from stdin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfir/config"
	"github.com/sarchlab/bfir/core"
	"github.com/sarchlab/bfir/ir"
	"github.com/sarchlab/bfir/verify"
	"github.com/tebeka/atexit"
)

const (
	exitOK = iota
	exitCompile
	exitRuntime
	exitUsage
)

type options struct {
	configPath  string
	engine      string
	logLevel    string
	dumpTape    bool
	dumpProgram bool
	noLint      bool
}

func parseFlags() (options, string) {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "run configuration file (.yaml, .yml or .toml)")
	flag.StringVar(&opts.engine, "engine", "", "execution engine: direct or sim")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flag.BoolVar(&opts.dumpTape, "dump-tape", false, "print the tape after the run")
	flag.BoolVar(&opts.dumpProgram, "dump-program", false, "print the compiled program before the run")
	flag.BoolVar(&opts.noLint, "no-lint", false, "skip static checks")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <source.bf>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	return opts, flag.Arg(0)
}

func loadConfig(opts options) (config.Config, error) {
	c := config.Default()
	if opts.configPath != "" {
		var err error
		if c, err = config.Load(opts.configPath); err != nil {
			return c, err
		}
	}

	if opts.engine != "" {
		c.Engine = opts.engine
	}
	if opts.logLevel != "" {
		c.Log.Level = opts.logLevel
	}
	c.DumpTape = c.DumpTape || opts.dumpTape
	c.DumpProgram = c.DumpProgram || opts.dumpProgram
	c.Lint = c.Lint && !opts.noLint

	return c, c.Validate()
}

func runDirect(prog ir.Program, in core.LineReader, c config.Config) (core.Result, error) {
	it := core.NewInterpreter(in)
	out, err := it.Run(prog)

	if c.DumpTape {
		core.PrintTape(os.Stderr, it.Snapshot())
	}

	return core.Result{Output: out}, err
}

func runSim(prog ir.Program, in core.LineReader, c config.Config) (core.Result, error) {
	engine := sim.NewSerialEngine()
	driver := c.BuildDriver(engine, in)

	if c.Monitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(driver.Core())
		monitor.StartServer()
	}

	driver.MapProgram(prog)
	res, err := driver.Run()

	if c.DumpTape {
		core.PrintTape(os.Stderr, driver.Core().Snapshot())
	}

	if err == nil {
		slog.Info("SimulationDone",
			"Cycles", res.Cycles,
			"Time", float64(engine.CurrentTime()*1e9),
		)
	}

	return res, err
}

func run(path string, c config.Config) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		return exitUsage
	}

	prog, err := ir.Build(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
		return exitCompile
	}

	if c.DumpProgram {
		ir.WriteListing(os.Stderr, prog)
	}

	if c.Lint {
		if report := verify.GenerateReport(prog); !report.OK() {
			report.WriteReport(os.Stderr)
		}
	}

	in := core.NewLineReader(os.Stdin)

	var res core.Result
	switch c.Engine {
	case config.EngineSim:
		res, err = runSim(prog, in, c)
	default:
		res, err = runDirect(prog, in, c)
	}

	var re *core.RuntimeError
	switch {
	case errors.As(err, &re):
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", re)
		return exitRuntime
	case err != nil:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitRuntime
	}

	fmt.Print(res.String())

	return exitOK
}

func main() {
	opts, path := parseFlags()
	if path == "" {
		flag.Usage()
		atexit.Exit(exitUsage)
	}

	c, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		atexit.Exit(exitUsage)
	}

	slog.SetDefault(c.NewLogger(os.Stderr))

	atexit.Exit(run(path, c))
}
