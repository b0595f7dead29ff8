package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/colt-lang/colt/internal/cli"
)

const (
	promptMain = "colt> "
	promptCont = "...   "
)

const helpText = `
REPL COMMANDS:
  :help, :h          Show this help
  :quit, :q, :exit   Exit REPL
  :reset             Forget every accepted input
  :ast on|off        Print the AST of accepted inputs
  :source            Show the accepted inputs
  :history           Show command history
`

type repl struct {
	session     *session
	historyFile string
	logger      *cli.Logger
	out         io.Writer
	ln          *liner.State
}

func (r *repl) run() int {
	r.ln = liner.NewLiner()
	defer r.ln.Close()
	r.ln.SetCtrlCAborts(true)
	r.ln.SetMultiLineMode(true)

	r.loadHistory()
	defer r.saveHistory()

	info := cli.GetVersionInfo()
	fmt.Fprintf(r.out, "colt REPL v%s (language %s)\n", info.Version, info.Language)
	fmt.Fprintln(r.out, "Type :help for help, :quit to exit")

	for {
		input, ok := r.read()
		if !ok {
			fmt.Fprintln(r.out)
			return 0
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		r.ln.AppendHistory(strings.ReplaceAll(trimmed, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if r.command(trimmed) {
				return 0
			}
			continue
		}
		r.logger.Debug("checking %q", trimmed)
		r.session.eval(trimmed, r.out, r.out)
	}
}

// read reads lines until the input has no unclosed bracket. It returns false
// on EOF.
func (r *repl) read() (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the current input
			return "", true
		}
		if err != nil {
			r.logger.Error("%v", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !strings.HasPrefix(strings.TrimSpace(b.String()), ":") && isIncomplete(b.String()) {
			continue
		}
		return b.String(), true
	}
}

// command executes a REPL command and reports whether the REPL should exit
func (r *repl) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help", ":h":
		fmt.Fprint(r.out, helpText)
	case ":quit", ":q", ":exit":
		return true
	case ":reset":
		r.session.reset()
		fmt.Fprintln(r.out, "Session reset")
	case ":ast":
		if len(fields) < 2 {
			fmt.Fprintf(r.out, "AST printing: %v\n", r.session.showAST)
			break
		}
		switch fields[1] {
		case "on":
			r.session.showAST = true
		case "off":
			r.session.showAST = false
		default:
			fmt.Fprintln(r.out, "Usage: :ast on|off")
		}
	case ":source":
		fmt.Fprint(r.out, r.session.source.String())
	case ":history":
		var buf bytes.Buffer
		if _, err := r.ln.WriteHistory(&buf); err != nil {
			r.logger.Error("%v", err)
			break
		}
		for i, entry := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			fmt.Fprintf(r.out, "%3d: %s\n", i+1, entry)
		}
	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", fields[0])
		fmt.Fprintln(r.out, "Type :help for available commands")
	}
	return false
}

func (r *repl) loadHistory() {
	f, err := os.Open(r.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := r.ln.ReadHistory(f); err != nil {
		r.logger.Debug("history: %v", err)
	}
}

func (r *repl) saveHistory() {
	f, err := os.Create(r.historyFile)
	if err != nil {
		r.logger.Debug("history: %v", err)
		return
	}
	defer f.Close()
	if _, err := r.ln.WriteHistory(f); err != nil {
		r.logger.Debug("history: %v", err)
	}
}
