package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/colt-lang/colt/internal/ast"
	"github.com/colt-lang/colt/internal/cli"
	"github.com/colt-lang/colt/internal/config"
	"github.com/colt-lang/colt/internal/diagnostic"
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/watch"
)

type checker struct {
	cfg    *config.Config
	opts   options
	color  bool
	logger *cli.Logger

	// serializes the output of concurrent checks
	mu sync.Mutex
}

// result is the output of checking a single file. Output is buffered so that
// the files checked concurrently do not interleave.
type result struct {
	path   string
	out    bytes.Buffer
	diags  bytes.Buffer
	counts diagnostic.Counts
}

// reporterFor builds the reporter chain used for one file. In brief mode
// the diagnostics are collected to be printed once the file is checked.
func (c *checker) reporterFor(w io.Writer) (diagnostic.Reporter, *diagnostic.Limiter, *diagnostic.Collector) {
	var (
		out       diagnostic.Reporter
		collected *diagnostic.Collector
	)
	if c.opts.brief {
		collected = diagnostic.NewCollector()
		out = collected
	} else {
		out = diagnostic.NewConsole(w, c.color)
	}
	limits := c.cfg.Limits
	limiter := diagnostic.NewLimiter(out, limits.MaxErrors, limits.MaxWarnings, limits.MaxMessages)
	if c.cfg.WarningsAsErrors {
		return diagnostic.NewWarningsAsErrors(limiter), limiter, collected
	}
	return limiter, limiter, collected
}

// checkFile lexes and parses one file with its own Program
func (c *checker) checkFile(path string) (*result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	res := &result{path: path}
	rep, limiter, collected := c.reporterFor(&res.diags)

	program := ast.NewProgram(c.cfg.Warnings, rep)
	tokens := lexer.Lex(path, string(source), rep)
	if c.opts.debugLexer {
		fmt.Fprintf(&res.out, "--- tokens of %s ---\n", path)
		tokens.Dump(&res.out)
	}
	unit := ast.NewUnit(program, tokens)
	unit.Parse()

	if c.opts.printAST {
		fmt.Fprintf(&res.out, "--- AST of %s ---\n", path)
		if err := ast.Fprint(&res.out, unit, c.color); err != nil {
			return nil, err
		}
	}
	if c.opts.verbose {
		stats := ast.CollectStats(unit)
		c.logger.Info("%s: %d tokens, %d statements, %d nodes (%d literals, %d conditions, %d errors)",
			path, tokens.Len(), len(unit.Statements()), stats.Nodes, stats.Literals, stats.Conditions, stats.Errors)
	}
	if collected != nil {
		diags := collected.Diagnostics()
		diagnostic.SortDiagnostics(diags)
		res.diags.WriteString(diagnostic.FormatDiagnostics(diags))
	}
	res.counts = limiter.Counts()
	return res, nil
}

func (c *checker) emit(res *result, stdout, stderr io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stdout.Write(res.out.Bytes())
	stderr.Write(res.diags.Bytes())
	if res.counts.Errors > 0 || res.counts.Warnings > 0 {
		c.logger.Info("%s: %d error(s), %d warning(s)", res.path, res.counts.Errors, res.counts.Warnings)
	}
}

// checkAll checks every file concurrently and writes the results in the
// order of paths. It reports whether any file failed.
func (c *checker) checkAll(ctx context.Context, paths []string, stdout, stderr io.Writer) bool {
	results := make([]*result, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return nil
			}
			c.logger.Debug("checking %s", path)
			results[i], errs[i] = c.checkFile(path)
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for i, path := range paths {
		if errs[i] != nil {
			c.logger.Error("%s: %v", path, errs[i])
			failed = true
			continue
		}
		c.emit(results[i], stdout, stderr)
		if results[i].counts.Errors > 0 {
			failed = true
		}
	}
	c.logger.Info("checked %d file(s)", len(paths))
	return failed
}

// watch checks a file again every time it changes, until ctx is done
func (c *checker) watch(ctx context.Context, paths []string, stdout, stderr io.Writer) error {
	w, err := watch.New(watch.DefaultDelay)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return err
		}
	}
	c.logger.Info("watching %d file(s)", len(paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			c.logger.Warn("watch: %v", err)
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op&(watch.OpCreate|watch.OpWrite|watch.OpRename) == 0 {
				continue
			}
			if _, err := os.Stat(ev.Path); err != nil {
				c.logger.Warn("%s was removed", ev.Path)
				continue
			}
			c.logger.Info("%s changed (%s)", ev.Path, ev.Op)
			c.checkAll(ctx, []string{ev.Path}, stdout, stderr)
		}
	}
}
