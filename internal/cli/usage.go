package cli

import (
	"flag"
	"fmt"
	"io"
)

// CommandInfo represents information about a CLI command
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
	Examples    []string
	Flags       []FlagInfo
}

// FlagInfo represents information about a command flag
type FlagInfo struct {
	Name    string
	Usage   string
	Default string
}

// FlagsOf describes every flag defined in fs, in lexical order
func FlagsOf(fs *flag.FlagSet) []FlagInfo {
	var flags []FlagInfo
	fs.VisitAll(func(f *flag.Flag) {
		def := f.DefValue
		if def == "false" || def == "0" {
			def = ""
		}
		flags = append(flags, FlagInfo{Name: f.Name, Usage: f.Usage, Default: def})
	})
	return flags
}

// PrintCommandUsage prints usage for a specific command
func PrintCommandUsage(w io.Writer, cmd CommandInfo) {
	fmt.Fprintf(w, "%s - %s\n\n", cmd.Name, cmd.Description)
	fmt.Fprintf(w, "USAGE:\n")
	fmt.Fprintf(w, "    %s\n\n", cmd.Usage)

	if len(cmd.Flags) > 0 {
		fmt.Fprintf(w, "OPTIONS:\n")
		for _, f := range cmd.Flags {
			fmt.Fprintf(w, "%-20s %s\n", "    -"+f.Name, f.Usage)
			if f.Default != "" {
				fmt.Fprintf(w, "%-20s Default: %s\n", "", f.Default)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	if len(cmd.Examples) > 0 {
		fmt.Fprintf(w, "EXAMPLES:\n")
		for _, example := range cmd.Examples {
			fmt.Fprintf(w, "    %s\n", example)
		}
		fmt.Fprintf(w, "\n")
	}
}

// ValidateArgs validates command line arguments
func ValidateArgs(args []string, minArgs int, usage string) error {
	if len(args) < minArgs {
		return fmt.Errorf("insufficient arguments\nUsage: %s", usage)
	}
	return nil
}
