// Package golden compares the output of tests with files stored under
// testdata. Running the tests with -update rewrites the files.
package golden

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var update = flag.Bool("update", false, "rewrite golden files")

// Options controls where golden files are looked up.
type Options struct {
	BaseDir string
	Ext     string
	Update  bool
}

// DefaultOptions returns the options used by Check
func DefaultOptions() Options {
	return Options{
		BaseDir: "testdata",
		Ext:     ".golden",
		Update:  *update,
	}
}

// Path returns the golden file of a test
func (o Options) Path(name string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_").Replace(name)
	return filepath.Join(o.BaseDir, safe+o.Ext)
}

// Verify compares actual with the golden file of name. In update mode the
// file is rewritten instead.
func (o Options) Verify(name, actual string) error {
	path := o.Path(name)
	if o.Update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create golden directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			return fmt.Errorf("failed to write golden file %s: %w", path, err)
		}
		return nil
	}

	expected, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("golden file %s does not exist, run the test with -update to create it", path)
	}
	if err != nil {
		return fmt.Errorf("failed to read golden file %s: %w", path, err)
	}
	if string(expected) == actual {
		return nil
	}
	return fmt.Errorf("golden file mismatch for %s:\n%s", path, Diff(string(expected), actual))
}

// Check fails t if actual differs from the golden file of name
func Check(t testing.TB, name, actual string) {
	t.Helper()
	if err := DefaultOptions().Verify(name, actual); err != nil {
		t.Error(err)
	}
}

// Diff returns the lines that differ between expected and actual
func Diff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var diff strings.Builder
	n := len(expectedLines)
	if len(actualLines) > n {
		n = len(actualLines)
	}
	for i := 0; i < n; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			fmt.Fprintf(&diff, "line %d:\n- %s\n+ %s\n", i+1, e, a)
		}
	}
	return diff.String()
}
