package cli

import (
	"os"

	"github.com/colt-lang/colt/internal/config"
)

// UseColor decides whether output written to f is colored
func UseColor(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(f)
}
