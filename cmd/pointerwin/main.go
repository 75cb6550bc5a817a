package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/wotw/pointerwin/internal/bench"
	"github.com/wotw/pointerwin/internal/config"
	"github.com/wotw/pointerwin/internal/logging"
	"github.com/wotw/pointerwin/internal/probe"
	"github.com/wotw/pointerwin/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runProbe(nil))
	}

	switch os.Args[1] {
	case "probe":
		os.Exit(runProbe(os.Args[2:]))
	case "bench":
		os.Exit(runBench(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pointerwin [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  probe               Print the window under the pointer (default)")
	fmt.Fprintln(w, "  bench               Time repeated lookups")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'pointerwin <command> --help' for command-specific options.")
}

// commonFlags are shared by probe and bench and override the config file.
type commonFlags struct {
	configPath string
	display    string
	stacking   string
	logLevel   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Config file path (default: ~/.config/pointerwin/config.yaml)")
	fs.StringVar(&c.display, "display", "", "X display to open (default: config, then $DISPLAY)")
	fs.StringVar(&c.stacking, "stacking", "", "Child order: bottom-to-top or top-to-bottom")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: trace|silly, debug, info, warn, error, off")
}

// load reads the config file and applies flag overrides.
func (c *commonFlags) load() (*config.Config, error) {
	var (
		res *config.LoadResult
		err error
	)
	if c.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(c.configPath)
	}
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	if c.display != "" {
		cfg.Display = c.display
	}
	if c.stacking != "" {
		cfg.Stacking = c.stacking
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	return logging.New(cfg.LoggingOptions())
}

func runProbe(args []string) int {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var common commonFlags
	common.register(fs)
	root := fs.String("root", "", "Start the search at this window id instead of the screen root")
	output := fs.String("output", "", "Output format: auto, text or json")
	colorMode := fs.String("color", "", "Colour: auto, always or never")
	details := fs.Bool("details", false, "Include EWMH/ICCCM metadata")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pointerwin probe [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Find the window under the mouse pointer and print its id and name.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "probe takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := common.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	if *output != "" {
		cfg.Output = config.OutputMode(*output)
	}
	if *colorMode != "" {
		cfg.Color = config.ColorMode(*colorMode)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}

	var rootID probe.WindowID
	if *root != "" {
		rootID, err = probe.ParseWindowID(*root)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitCode(err)
		}
	}

	log, closer, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closer.Close()
	log.Info().Msg("launching")

	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		log.Error().Err(err).Msg("failed to open display")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()
	log.Debug().Str("display", conn.Display()).Stringer("root", conn.RootWindow()).Msg("connected")

	resolver := probe.NewResolver(probe.NewFinder(log, cfg.StackingOrder()), log).WithRoot(rootID)
	ident, err := resolver.Resolve(conn)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	var d *x11.Details
	if *details {
		desc := conn.Describe(ident.Window)
		d = &desc
	}
	log.Info().Msg("closing the display")

	p := printer{
		mode:  cfg.Output,
		color: cfg.Color,
		isTTY: stdoutIsTerminal(),
	}
	if err := p.write(os.Stdout, ident, d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runBench(args []string) int {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var common commonFlags
	common.register(fs)
	iterations := fs.Int("n", 0, "Timed iterations (default: config bench.iterations)")
	warmup := fs.Int("warmup", -1, "Untimed warmup iterations (default: config bench.warmup)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pointerwin bench [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Time full lookups: open display, search, name, close.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "bench takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := common.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	if *iterations > 0 {
		cfg.Bench.Iterations = *iterations
	}
	if *warmup >= 0 {
		cfg.Bench.Warmup = *warmup
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}

	log, closer, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closer.Close()

	resolver := probe.NewResolver(probe.NewFinder(log, cfg.StackingOrder()), log)
	var last probe.Identity
	runner := bench.Runner{Iterations: cfg.Bench.Iterations, Warmup: cfg.Bench.Warmup}
	res, err := runner.Run(func() error {
		conn, err := x11.NewConnection(cfg.Display)
		if err != nil {
			return err
		}
		defer conn.Close()
		last, err = resolver.Resolve(conn)
		return err
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}

	log.Info().Stringer("window", last.Window).Str("name", last.Name).Msg("last lookup")
	bench.WriteReport(os.Stdout, res)
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  pointerwin config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  pointerwin config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/pointerwin/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		res, err := loadConfigResult(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if res.File == "" {
			fmt.Println("config: ok (no file, using defaults)")
		} else {
			fmt.Printf("config: ok (%s)\n", res.File)
		}
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/pointerwin/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfigResult(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Printf("# source: %s\n", res.File)
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

func loadConfigResult(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// exitCode maps an error to the process exit status: bad input is a usage
// error, anything else a runtime failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, probe.ErrInvalidInput):
		return 2
	default:
		return 1
	}
}
