// Package main provides the wlangc command, which transpiles a W source
// file to C.
//
// The pipeline:
// 1. Lexical analysis (tokenization)
// 2. Parsing with name resolution and type checking in the same pass
// 3. C code generation, skipped when any error was reported
//
// Errors are printed to stderr as "Error on line N: message". The output
// file is only written when the whole program is valid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hassan/wlang/internal/diag"
	"github.com/hassan/wlang/internal/parser/ast"
	"github.com/hassan/wlang/internal/transpiler"
)

const usage = `Usage: wlangc [flags] <input-path> <output-path>

Transpiles a W source file into a C source file.

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wlangc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	verbose := fs.Bool("v", false, "log pipeline progress to stderr")
	maxErrors := fs.Int("max-errors", diag.DefaultMaxErrors, "stop after this many errors")
	dumpAST := fs.Bool("dump-ast", false, "print the checked syntax tree to stdout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(stderr, "wlangc: ", log.Ltime|log.Lmicroseconds)
	}

	opts := transpiler.Options{
		MaxErrors:   *maxErrors,
		Diagnostics: stderr,
		Logger:      logger,
	}
	res, err := transpiler.TranspileFile(inPath, outPath, opts)
	if *dumpAST && res != nil && res.Program != nil {
		fmt.Fprintln(stdout, ast.Dump(res.Program))
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, transpiler.ErrFailed):
		fmt.Fprintf(stderr, "%s: %d error(s), no output written\n", inPath, len(res.Diagnostics))
	case errors.Is(err, diag.ErrTooManyErrors):
		// The reporter already printed its notice.
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
