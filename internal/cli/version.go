// Package cli holds what the colt command line tools share: version
// reporting, a leveled logger, usage output and terminal detection.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/colt-lang/colt/internal/config"
)

// Version information for all CLI tools
const (
	Version   = "0.3.1"
	BuildDate = "2026-10-17"
)

// CommitSHA is set during build with -ldflags "-X".
var CommitSHA = "unknown"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	Language  string `json:"language"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		Language:  config.LanguageVersion,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// IsPrerelease reports whether the tools were built from a prerelease
// version.
func (v *VersionInfo) IsPrerelease() bool {
	sv, err := semver.NewVersion(v.Version)
	return err == nil && sv.Prerelease() != ""
}

// PrintVersion writes version information in a consistent format
func PrintVersion(w io.Writer, toolName string, jsonOutput bool) error {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s v%s (language %s)\n", toolName, info.Version, info.Language)
	if info.IsPrerelease() {
		fmt.Fprintf(w, "Prerelease build\n")
	}
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}
