// Package transpiler runs the whole pipeline: it scans and parses a W source
// file, and when no diagnostic was recorded it generates C and writes it.
//
// The output file is written to a temporary file next to the destination
// and renamed into place only after the whole program was generated, so a
// failed run never leaves output behind.
package transpiler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/hassan/wlang/internal/codegen"
	"github.com/hassan/wlang/internal/diag"
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/parser"
	"github.com/hassan/wlang/internal/parser/ast"
)

// ErrFailed is returned when the source had errors. The diagnostics are
// joined into the returned error.
var ErrFailed = errors.New("transpilation failed")

// Options configure a run.
type Options struct {
	// MaxErrors is the number of errors that aborts parsing. Zero selects
	// diag.DefaultMaxErrors.
	MaxErrors int

	// Diagnostics receives every error as it is recorded. Nil discards them.
	Diagnostics io.Writer

	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// Result is the outcome of a run.
type Result struct {
	// Program is the parsed tree. It is nil when parsing was aborted.
	Program *ast.Program

	// C is the generated code. It is empty unless the run succeeded.
	C string

	Diagnostics []diag.Diagnostic
}

// Transpile converts W source to C. filename is only used in positions.
//
// When any diagnostic was recorded no code is generated and the error wraps
// ErrFailed, or diag.ErrTooManyErrors when the error budget ran out.
func Transpile(source, filename string, opts Options) (*Result, error) {
	logger := opts.logger()
	reporter := diag.NewReporter(opts.Diagnostics, diag.Policy{MaxErrors: opts.MaxErrors})

	p := parser.New(lexer.New(source, filename), reporter)
	defer p.Release()

	prog, err := p.Parse()
	res := &Result{Program: prog, Diagnostics: reporter.Diagnostics()}
	if err != nil {
		return res, fmt.Errorf("%s: %w", filename, err)
	}
	logger.Printf("parsed %s: %d functions, %d globals", filename, len(prog.Functions), len(prog.Globals))

	if reporter.HasErrors() {
		return res, fmt.Errorf("%s: %w: %w", filename, ErrFailed, reporter.Err())
	}

	res.C, err = codegen.Generate(prog)
	if err != nil {
		return res, fmt.Errorf("%s: %w", filename, err)
	}
	logger.Printf("generated %d bytes of C", len(res.C))
	return res, nil
}

// TranspileFile transpiles the file at inPath into outPath. On failure any
// existing file at outPath is removed, so no output survives a failed run.
func TranspileFile(inPath, outPath string, opts Options) (*Result, error) {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	res, err := Transpile(string(source), inPath, opts)
	if err != nil {
		removeStale(outPath)
		return res, err
	}

	if err := writeFile(outPath, []byte(res.C)); err != nil {
		removeStale(outPath)
		return res, fmt.Errorf("write output: %w", err)
	}
	opts.logger().Printf("wrote %s", outPath)
	return res, nil
}

// writeFile writes data to a temporary file in the destination directory
// and renames it over path.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wlangc-*.c")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// removeStale deletes the output of an earlier run, if any.
func removeStale(path string) {
	_ = os.Remove(path)
}
