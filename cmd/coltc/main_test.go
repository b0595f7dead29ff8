package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.colt", "let a = 2 + 3;\nvar b = a * 2;\nb = b + 1;\n")
	invalid := writeFile(t, dir, "invalid.colt", "let a = foo + 1;\n")
	warns := writeFile(t, dir, "warns.colt", "let a: u8 = 255u8 + 1u8;\n")
	many := writeFile(t, dir, "many.colt", "x; y; z; w;\n")
	cfg := writeFile(t, dir, "colt.yml", "language: \">= 99.0.0\"\n")

	tests := []struct {
		name       string
		args       []string
		code       int
		wantOut    []string
		wantErr    []string
		notWantErr []string
	}{
		{"valid", []string{"-no-color", valid}, 0, nil, nil, []string{"error:"}},
		{"invalid", []string{"-no-color", invalid}, 1, nil, []string{"error:", "Variable 'foo' does not exist!"}, nil},
		{"mixed", []string{"-no-color", valid, invalid}, 1, nil, []string{"Variable 'foo' does not exist!"}, nil},
		{"warnings pass", []string{"-no-color", warns}, 0, nil, []string{"warning:"}, nil},
		{"warnings as errors", []string{"-no-color", "-Werror", warns}, 1, nil, []string{"error:"}, nil},
		{"max errors", []string{"-no-color", "-max-errors", "2", many}, 1, nil,
			[]string{"Variable 'y' does not exist!", "No more errors will be reported."},
			[]string{"Variable 'z' does not exist!"}},
		{"brief", []string{"-brief", invalid, warns}, 1, nil,
			[]string{"invalid.colt:1:9: error: Variable 'foo' does not exist!", "Found 1 error(s).", "Found 1 warning(s)."},
			[]string{"\x1b["}},
		{"print ast", []string{"-no-color", "-print-ast", valid}, 0,
			[]string{"--- AST of", "VAR_DECL a #0: i64", "LITERAL 5: i64", "VAR_WRITE b"}, nil, nil},
		{"debug lexer", []string{"-no-color", "-debug-lexer", valid}, 0, []string{"--- tokens of"}, nil, nil},
		{"verbose", []string{"-no-color", "-verbose", valid}, 0, nil, []string{"[INFO]", "checked 1 file(s)"}, nil},
		{"missing file", []string{"-no-color", filepath.Join(dir, "nope.colt")}, 1, nil, []string{"failed to read"}, nil},
		{"no files", []string{"-no-color"}, 2, nil, []string{"insufficient arguments"}, nil},
		{"language mismatch", []string{"-config", cfg, valid}, 1, nil, []string{"requires language"}, nil},
		{"version", []string{"-version"}, 0, []string{"coltc v"}, nil, nil},
		{"help", []string{"-h"}, 0, nil, []string{"USAGE:", "-print-ast"}, nil},
		{"bad flag", []string{"-nope"}, 2, nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d\nstderr:\n%s", code, tt.code, stderr.String())
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout does not contain %q:\n%s", want, stdout.String())
				}
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr does not contain %q:\n%s", want, stderr.String())
				}
			}
			for _, bad := range tt.notWantErr {
				if strings.Contains(stderr.String(), bad) {
					t.Errorf("stderr contains %q:\n%s", bad, stderr.String())
				}
			}
		})
	}
}

func TestOutputOrderIsStable(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.colt", "b.colt", "c.colt", "d.colt"} {
		paths = append(paths, writeFile(t, dir, name, "undeclared_"+strings.TrimSuffix(name, ".colt")+";\n"))
	}

	var stderr bytes.Buffer
	run(context.Background(), append([]string{"-no-color"}, paths...), &bytes.Buffer{}, &stderr)

	out := stderr.String()
	last := -1
	for _, name := range []string{"a", "b", "c", "d"} {
		idx := strings.Index(out, "Variable 'undeclared_"+name+"' does not exist!")
		if idx < 0 || idx < last {
			t.Fatalf("diagnostics are not in command line order:\n%s", out)
		}
		last = idx
	}
}

func TestBriefOrdersByPosition(t *testing.T) {
	dir := t.TempDir()
	// the lexer reports the invalid character before the parser runs
	path := writeFile(t, dir, "order.colt", "foo;\nlet a = @;\n")

	var stderr bytes.Buffer
	run(context.Background(), []string{"-brief", path}, &bytes.Buffer{}, &stderr)

	out := stderr.String()
	first := strings.Index(out, "Variable 'foo' does not exist!")
	second := strings.Index(out, "Invalid character!")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("diagnostics are not ordered by position:\n%s", out)
	}
	if !strings.HasSuffix(out, "Found 2 error(s).\n") {
		t.Errorf("missing summary:\n%s", out)
	}
}
