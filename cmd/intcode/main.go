// intcode runs an intcode program.
//
// Usage:
//
//	intcode [flags] program.txt[.zst]
//
// Input values are read one per line from stdin (or -input); printed values
// go to stdout, one per line by default. Settings may also come from an
// intcode.toml file; flags take precedence.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/fortiblox/intcode/pkg/config"
	"github.com/fortiblox/intcode/pkg/intcode"
	"github.com/fortiblox/intcode/pkg/loader"
)

// Version information
var (
	Version   = "0.1.0"
	GitCommit = "dev"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// patchFlags collects repeated -set addr=value flags.
type patchFlags []config.Patch

func (p *patchFlags) String() string {
	parts := make([]string, len(*p))
	for i, patch := range *p {
		parts[i] = fmt.Sprintf("%d=%d", patch.Address, patch.Value)
	}
	return strings.Join(parts, ",")
}

func (p *patchFlags) Set(s string) error {
	patch, err := parsePatch(s)
	if err != nil {
		return err
	}
	*p = append(*p, patch)
	return nil
}

// parsePatch parses "addr=value".
func parsePatch(s string) (config.Patch, error) {
	addr, value, ok := strings.Cut(s, "=")
	if !ok {
		return config.Patch{}, fmt.Errorf("patch %q: want addr=value", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(addr))
	if err != nil || a < 0 {
		return config.Patch{}, fmt.Errorf("patch %q: bad address", s)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return config.Patch{}, fmt.Errorf("patch %q: bad value", s)
	}
	return config.Patch{Address: a, Value: v}, nil
}

// run executes the CLI and returns the exit code. Errors that end the run are
// written to stderr. Log output goes through commonlog, which writes to the
// process's standard error or to the configured log file.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("intcode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "Path to intcode.toml (default: ./intcode.toml if present)")
		inputPath   = fs.String("input", "", "File of input values, one per line (default: stdin)")
		maxSteps    = fs.Uint64("max-steps", 0, "Maximum instructions to execute (0 = unlimited)")
		requireHalt = fs.Bool("require-halt", false, "Fail if the program runs off the end of memory")
		separator   = fs.String("sep", "\n", "Separator written after each printed value")
		dumpMemory  = fs.Bool("dump", false, "Print final memory to stderr after the run")
		hashAlgo    = fs.String("hash", "", "Fingerprint algorithm: blake3, keccak256")
		logLevel    = fs.String("log-level", "", "Log level: error, warn, info, debug")
		showVersion = fs.Bool("version", false, "Print version and exit")
		patches     patchFlags
	)
	fs.Var(&patches, "set", "Overwrite a memory cell before running, addr=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "intcode %s (%s)\n", Version, GitCommit)
		return exitOK
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "intcode: %v\n", err)
		return exitUsage
	}

	// Flags override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Run.Input = *inputPath
		case "max-steps":
			cfg.Run.MaxSteps = *maxSteps
		case "require-halt":
			cfg.Run.RequireHalt = *requireHalt
		case "sep":
			cfg.Run.Separator = *separator
		case "dump":
			cfg.Run.DumpMemory = *dumpMemory
		case "hash":
			cfg.Run.Fingerprint = *hashAlgo
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	cfg.Program.Patches = append(cfg.Program.Patches, patches...)
	if fs.NArg() > 0 {
		cfg.Program.Path = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "intcode: too many arguments")
		return exitUsage
	}
	if cfg.Program.Path == "" {
		fmt.Fprintln(stderr, "usage: intcode [flags] program.txt[.zst]")
		fs.PrintDefaults()
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "intcode: %v\n", err)
		return exitUsage
	}

	// Setup logging
	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity(), logFile)
	log := commonlog.GetLogger("intcode")
	log.Debugf("Starting intcode %s", Version)

	fail := func(format string, args ...any) int {
		fmt.Fprintf(stderr, "intcode: "+format+"\n", args...)
		return exitFailed
	}

	memory, err := loader.LoadFile(cfg.Program.Path)
	if err != nil {
		return fail("load program: %v", err)
	}
	if err := cfg.Program.Apply(memory); err != nil {
		return fail("patch program: %v", err)
	}

	algo, _ := loader.ParseHashAlgorithm(cfg.Run.Fingerprint)
	fingerprint, err := loader.Fingerprint(memory, algo)
	if err != nil {
		return fail("fingerprint program: %v", err)
	}
	log.Infof("Loaded %s: %d cells, %s %s", cfg.Program.Path, len(memory), algo, fingerprint)

	in := stdin
	if cfg.Run.Input != "" && cfg.Run.Input != "-" {
		f, err := os.Open(cfg.Run.Input)
		if err != nil {
			return fail("open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	opts := intcode.ProgramOpts{
		MaxSteps:    cfg.Run.MaxSteps,
		RequireHalt: cfg.Run.RequireHalt,
	}
	if cfg.Log.Level == "debug" {
		opts.Logger = commonlog.GetLogger("intcode.vm")
	}

	program := intcode.New(memory, opts)
	runErr := program.RunWithIO(intcode.ReaderInput(in), intcode.WriterOutput(stdout, cfg.Run.Separator))

	if cfg.Run.DumpMemory {
		fmt.Fprintln(stderr, loader.Format(program.Memory()))
	}

	limit, remaining := program.StepBudget()
	if runErr != nil {
		if addr, ok := intcode.AddressOf(runErr); ok && addr < len(memory) {
			log.Infof("Program %s stopped at cell %d = %d", fingerprint.Short(), addr, program.Memory()[addr])
		}
		switch {
		case errors.Is(runErr, intcode.ErrStepLimitExceeded):
			log.Warningf("Step budget of %d exhausted; raise -max-steps", limit)
		case intcode.IsAdapterError(runErr) && errors.Is(runErr, intcode.ErrInputExhausted):
			log.Warningf("Input ran out; supply more values on stdin or with -input")
		}
		return fail("program %s failed after %d steps: %v", fingerprint.Short(), program.Steps(), runErr)
	}

	if limit != 0 {
		log.Infof("Program %s halted after %d steps, %d of %d budget left",
			fingerprint.Short(), program.Steps(), remaining, limit)
	} else {
		log.Infof("Program %s halted after %d steps", fingerprint.Short(), program.Steps())
	}
	return exitOK
}

// loadConfig loads the named file, or ./intcode.toml if it exists, or the
// defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.FileName); err == nil {
		return config.Load(config.FileName)
	}
	return config.Default(), nil
}
