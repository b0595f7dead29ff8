// Command colt-repl checks colt statements interactively.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/colt-lang/colt/internal/cli"
	"github.com/colt-lang/colt/internal/config"
)

const historyName = ".colt_history"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyName
	}
	return filepath.Join(home, historyName)
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colt-repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		showVersion = fs.Bool("version", false, "show version information")
		jsonOutput  = fs.Bool("json", false, "output version in JSON format")
		debugMode   = fs.Bool("debug", false, "enable debug mode")
		configPath  = fs.String("config", config.DefaultFile, "configuration file")
		noColor     = fs.Bool("no-color", false, "disable colored output")
		showAST     = fs.Bool("ast", false, "print the AST of every accepted input")
		historyFile = fs.String("history", defaultHistory(), "history file path")
	)
	fs.Usage = func() {
		cli.PrintCommandUsage(stderr, cli.CommandInfo{
			Name:        "colt-repl",
			Usage:       "colt-repl [OPTIONS]",
			Description: "interactive colt statement checker",
			Examples:    []string{"colt-repl", "colt-repl -ast -no-color"},
			Flags:       cli.FlagsOf(fs),
		})
		fmt.Fprint(stderr, helpText)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		if err := cli.PrintVersion(stdout, "colt-repl", *jsonOutput); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	logger := cli.NewLogger(stderr, false, *debugMode)
	cfg, err := config.Load(*configPath)
	if err == nil {
		err = cfg.CheckLanguage()
	}
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	if *noColor {
		cfg.Color = config.ColorNever
	}

	s := newSession(cfg, cli.UseColor(cfg.Color, os.Stdout))
	s.showAST = *showAST
	r := &repl{session: s, historyFile: *historyFile, logger: logger, out: stdout}
	return r.run()
}
