package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name:  "empty file",
			input: "",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Warnings != WarnAll() {
					t.Errorf("Warnings = %+v, want all enabled", cfg.Warnings)
				}
				if cfg.Color != ColorAuto {
					t.Errorf("Color = %q, want %q", cfg.Color, ColorAuto)
				}
			},
		},
		{
			name: "warnings and limits",
			input: `
color: never
warnings:
  constant_folding_nan: false
  constant_folding_unsigned_ou: false
  as_errors: true
limits:
  max_errors: 5
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Warnings.ConstantFoldingNaN || cfg.Warnings.ConstantFoldingUnsigned {
					t.Errorf("disabled warnings are still enabled: %+v", cfg.Warnings)
				}
				if !cfg.Warnings.ConstantFoldingSigned || !cfg.Warnings.ConstantFoldingShift {
					t.Errorf("unspecified warnings should stay enabled: %+v", cfg.Warnings)
				}
				if !cfg.WarningsAsErrors {
					t.Error("WarningsAsErrors = false, want true")
				}
				if cfg.Limits.MaxErrors != 5 || cfg.Limits.MaxWarnings != 0 {
					t.Errorf("Limits = %+v", cfg.Limits)
				}
				if cfg.Color != ColorNever {
					t.Errorf("Color = %q, want %q", cfg.Color, ColorNever)
				}
			},
		},
		{
			name:    "unknown field",
			input:   "colour: never\n",
			wantErr: "field colour not found",
		},
		{
			name:    "bad color",
			input:   "color: rainbow\n",
			wantErr: "unsupported mode",
		},
		{
			name:    "negative limit",
			input:   "limits:\n  max_warnings: -1\n",
			wantErr: "limits.max_warnings",
		},
		{
			name:    "bad constraint",
			input:   "language: \"not a version\"\n",
			wantErr: "language: invalid constraint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Decode("colt.yml", strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidationErrorAggregates(t *testing.T) {
	_, err := Decode("colt.yml", strings.NewReader("color: x\nlimits:\n  max_errors: -2\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a *ValidationError, got %T", err)
	}
	if len(verr.Issues) != 2 {
		t.Errorf("expected 2 issues, got %v", verr.Issues)
	}
}

func TestCheckLanguage(t *testing.T) {
	tests := []struct {
		constraint string
		ok         bool
	}{
		{"", true},
		{">= 0.1.0", true},
		{"~0.3", true},
		{"^1.0.0", false},
		{"< 0.3.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			input := ""
			if tt.constraint != "" {
				input = "language: \"" + tt.constraint + "\"\n"
			}
			cfg, err := Decode("colt.yml", strings.NewReader(input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			err = cfg.CheckLanguage()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected the constraint to reject the language version")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, DefaultFile))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Warnings != WarnAll() {
		t.Errorf("missing file should give the default warnings")
	}

	path := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(path, []byte("warnings:\n  var_shadowing: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Warnings.VarShadowing {
		t.Error("VarShadowing should be disabled")
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}
