package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func writeSource(t *testing.T, src string) (in, out string) {
	t.Helper()
	dir := t.TempDir()
	in = filepath.Join(dir, "main.w")
	out = filepath.Join(dir, "main.c")
	be.Err(t, os.WriteFile(in, []byte(src), 0o644), nil)
	return in, out
}

func TestRun(t *testing.T) {
	in, out := writeSource(t, "fun w() { log(\"hi\"); }")
	var stdout, stderr bytes.Buffer

	code := run([]string{in, out}, &stdout, &stderr)
	be.Equal(t, code, 0)
	be.Equal(t, stdout.String(), "")
	be.Equal(t, stderr.String(), "")

	data, err := os.ReadFile(out)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(data), "printf(\"hi\\n\");"))
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"only.w"}, {"a.w", "b.c", "c.c"}} {
		var stdout, stderr bytes.Buffer
		code := run(args, &stdout, &stderr)
		be.Equal(t, code, 1)
		be.True(t, strings.HasPrefix(stderr.String(), "Usage: wlangc"))
	}
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	be.Equal(t, run([]string{"-nope", "a.w", "b.c"}, &stdout, &stderr), 1)
}

func TestRun_Diagnostics(t *testing.T) {
	in, out := writeSource(t, "fun w() {\n    dec s: str = 1;\n}\n")
	var stdout, stderr bytes.Buffer

	code := run([]string{in, out}, &stdout, &stderr)
	be.Equal(t, code, 1)
	be.True(t, strings.HasPrefix(stderr.String(),
		"Error on line 2: Type mismatch in initialization: cannot assign num to str\n"))
	be.True(t, strings.Contains(stderr.String(), "1 error(s), no output written"))

	_, err := os.Stat(out)
	be.Err(t, err, os.ErrNotExist)
}

func TestRun_MaxErrors(t *testing.T) {
	in, out := writeSource(t, "dec a;\ndec b;\ndec c;\n")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-max-errors", "2", in, out}, &stdout, &stderr)
	be.Equal(t, code, 1)
	want := "Error on line 1: Missing type annotation for variable 'a'\n" +
		"Error on line 2: Missing type annotation for variable 'b'\n" +
		"Too many errors, exiting.\n"
	be.Equal(t, stderr.String(), want)
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{filepath.Join(dir, "none.w"), filepath.Join(dir, "out.c")}, &stdout, &stderr)
	be.Equal(t, code, 1)
	be.True(t, strings.HasPrefix(stderr.String(), "Error: read source:"))
}

func TestRun_DumpAST(t *testing.T) {
	in, out := writeSource(t, "fun w(): num { ret 1; }")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-dump-ast", in, out}, &stdout, &stderr)
	be.Equal(t, code, 0)
	be.Equal(t, stdout.String(), "(program\n  (fun w () num entry\n    (ret (int 1))))\n")
}

func TestRun_Verbose(t *testing.T) {
	in, out := writeSource(t, "fun w() {}")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-v", in, out}, &stdout, &stderr)
	be.Equal(t, code, 0)
	be.True(t, strings.Contains(stderr.String(), "wlangc: "))
	be.True(t, strings.Contains(stderr.String(), "wrote "+out))
}
