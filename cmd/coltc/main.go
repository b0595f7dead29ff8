// Command coltc checks colt source files: it lexes, parses and type checks
// every file given on the command line and reports the diagnostics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/colt-lang/colt/internal/cli"
	"github.com/colt-lang/colt/internal/config"
)

type options struct {
	printAST   bool
	debugLexer bool
	configPath string
	maxErrors  uint64
	noColor    bool
	werror     bool
	watch      bool
	verbose    bool
	debug      bool
	version    bool
	jsonOutput bool
	brief      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("coltc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.printAST, "print-ast", false, "print the AST of every file")
	fs.BoolVar(&opts.debugLexer, "debug-lexer", false, "print the tokens of every file")
	fs.StringVar(&opts.configPath, "config", "", "configuration file (default: "+config.DefaultFile+" if present)")
	fs.Uint64Var(&opts.maxErrors, "max-errors", 0, "maximum number of errors printed per file (0: no limit)")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&opts.brief, "brief", false, "print one line per diagnostic, ordered by position")
	fs.BoolVar(&opts.werror, "Werror", false, "report warnings as errors")
	fs.BoolVar(&opts.watch, "watch", false, "check the files again whenever they change")
	fs.BoolVar(&opts.verbose, "verbose", false, "log what the compiler does")
	fs.BoolVar(&opts.debug, "debug", false, "log debug information")
	fs.BoolVar(&opts.version, "version", false, "show version information")
	fs.BoolVar(&opts.jsonOutput, "json", false, "output version in JSON format")

	fs.Usage = func() {
		cli.PrintCommandUsage(stderr, cli.CommandInfo{
			Name:        "coltc",
			Usage:       "coltc [OPTIONS] FILE...",
			Description: "checks colt source files",
			Examples: []string{
				"coltc main.colt",
				"coltc -print-ast -no-color main.colt",
				"coltc -watch -max-errors 10 src/*.colt",
				"coltc -brief src/*.colt",
			},
			Flags: cli.FlagsOf(fs),
		})
	}
	return fs
}

// run executes coltc and returns its exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		if err := cli.PrintVersion(stdout, "coltc", opts.jsonOutput); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	logger := cli.NewLogger(stderr, opts.verbose, opts.debug)
	if err := cli.ValidateArgs(fs.Args(), 1, "coltc [OPTIONS] FILE..."); err != nil {
		logger.Error("%v", err)
		return 2
	}

	cfg, err := loadConfig(opts, fs)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	logger.Debug("configuration: %+v", *cfg)

	c := &checker{
		cfg:    cfg,
		opts:   opts,
		color:  !opts.noColor && cli.UseColor(cfg.Color, os.Stderr),
		logger: logger,
	}
	failed := c.checkAll(ctx, fs.Args(), stdout, stderr)
	if opts.watch {
		if err := c.watch(ctx, fs.Args(), stdout, stderr); err != nil {
			logger.Error("%v", err)
			return 1
		}
		return 0
	}
	if failed {
		return 1
	}
	return 0
}

// loadConfig reads the configuration file, then applies the flags that
// were explicitly set on the command line.
func loadConfig(opts options, fs *flag.FlagSet) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckLanguage(); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-errors":
			cfg.Limits.MaxErrors = opts.maxErrors
		case "no-color":
			if opts.noColor {
				cfg.Color = config.ColorNever
			}
		case "Werror":
			cfg.WarningsAsErrors = opts.werror
		}
	})
	return cfg, nil
}
