package transpiler

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hassan/wlang/internal/diag"
	"github.com/hassan/wlang/internal/mdtest"
	"github.com/hassan/wlang/internal/parser/ast"
	"github.com/nalgeon/be"
)

const program = "fun w(): num {\n    dec x: num = 2 + 3;\n    ret x;\n}\n"

const programC = "#include <stdio.h>\n" +
	"#include <stdbool.h>\n" +
	"#include <string.h>\n" +
	"\n" +
	"int main(void) {\n" +
	"    int x = 2 + 3;\n" +
	"    return x;\n" +
	"}\n"

func TestTranspile(t *testing.T) {
	res, err := Transpile(program, "main.w", Options{})
	be.Err(t, err, nil)
	be.Equal(t, res.C, programC)
	be.Equal(t, len(res.Diagnostics), 0)
	be.Equal(t, res.Program.Filename, "main.w")
}

func TestTranspile_Diagnostics(t *testing.T) {
	var out bytes.Buffer
	src := "fun w() {\n    dec s: str = 1;\n    x = 2;\n}\n"

	res, err := Transpile(src, "bad.w", Options{Diagnostics: &out})
	be.Err(t, err, ErrFailed)
	be.Err(t, err, "bad.w: transpilation failed")
	be.Equal(t, res.C, "")
	be.Equal(t, len(res.Diagnostics), 2)

	var d diag.Diagnostic
	be.True(t, errors.As(err, &d))
	be.Equal(t, d.Line, 2)

	want := "Error on line 2: Type mismatch in initialization: cannot assign num to str\n" +
		"Error on line 3: Undefined variable 'x'\n"
	be.Equal(t, out.String(), want)
}

func TestTranspile_TooManyErrors(t *testing.T) {
	var out bytes.Buffer
	src := strings.Repeat("dec a;\n", 4)

	res, err := Transpile(src, "bad.w", Options{MaxErrors: 3, Diagnostics: &out})
	be.Err(t, err, diag.ErrTooManyErrors)
	be.True(t, !errors.Is(err, ErrFailed))
	be.True(t, res.Program == nil)
	be.Equal(t, len(res.Diagnostics), 3)
	be.True(t, strings.HasSuffix(out.String(), "Too many errors, exiting.\n"))
}

func TestTranspile_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	_, err := Transpile(program, "main.w", Options{Logger: logger})
	be.Err(t, err, nil)

	want := "parsed main.w: 1 functions, 0 globals\n" +
		"generated 113 bytes of C\n"
	be.Equal(t, buf.String(), want)
}

func TestTranspileFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.w")
	out := filepath.Join(dir, "main.c")
	be.Err(t, os.WriteFile(in, []byte(program), 0o644), nil)

	var buf bytes.Buffer
	res, err := TranspileFile(in, out, Options{Logger: log.New(&buf, "", 0)})
	be.Err(t, err, nil)
	be.Equal(t, res.C, programC)

	data, err := os.ReadFile(out)
	be.Err(t, err, nil)
	be.Equal(t, string(data), programC)
	be.True(t, strings.HasSuffix(buf.String(), "wrote "+out+"\n"))

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	be.Err(t, err, nil)
	be.Equal(t, len(entries), 2)
}

func TestTranspileFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.w")
	out := filepath.Join(dir, "main.c")
	be.Err(t, os.WriteFile(in, []byte(program), 0o644), nil)
	be.Err(t, os.WriteFile(out, []byte("old"), 0o644), nil)

	_, err := TranspileFile(in, out, Options{})
	be.Err(t, err, nil)

	data, err := os.ReadFile(out)
	be.Err(t, err, nil)
	be.Equal(t, string(data), programC)
}

func TestTranspileFile_FailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.w")
	out := filepath.Join(dir, "bad.c")
	be.Err(t, os.WriteFile(in, []byte("fun w() { dec s: str = 1; }"), 0o644), nil)
	be.Err(t, os.WriteFile(out, []byte("stale"), 0o644), nil)

	_, err := TranspileFile(in, out, Options{})
	be.Err(t, err, ErrFailed)

	_, err = os.Stat(out)
	be.Err(t, err, os.ErrNotExist)
}

func TestTranspileFile_ReadError(t *testing.T) {
	dir := t.TempDir()
	res, err := TranspileFile(filepath.Join(dir, "missing.w"), filepath.Join(dir, "out.c"), Options{})
	be.Err(t, err, os.ErrNotExist)
	be.Err(t, err, "read source")
	be.True(t, res == nil)
}

func TestTranspileFile_WriteError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.w")
	be.Err(t, os.WriteFile(in, []byte(program), 0o644), nil)

	res, err := TranspileFile(in, filepath.Join(dir, "missing", "main.c"), Options{})
	be.Err(t, err, "write output")
	be.Equal(t, res.C, programC)
}

func TestTranspile_Golden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			cases, err := mdtest.Load(file)
			be.Err(t, err, nil)

			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					res, err := Transpile(tc.Source, "test.w", Options{})

					got := []string{}
					for _, d := range res.Diagnostics {
						got = append(got, d.Error())
					}
					if want, ok := tc.Errors(); ok {
						be.Equal(t, got, want)
					}
					if len(got) > 0 {
						be.True(t, err != nil)
						be.Equal(t, res.C, "")
					} else {
						be.Err(t, err, nil)
					}

					if want, ok := tc.Expect(mdtest.FenceC); ok {
						be.Equal(t, strings.TrimRight(res.C, "\n"), want)
					}
					if want, ok := tc.Expect(mdtest.FenceAST); ok {
						be.Equal(t, mdtest.NormalizeSExpr(ast.Dump(res.Program)), mdtest.NormalizeSExpr(want))
					}
				})
			}
		})
	}
}
