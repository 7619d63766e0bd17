// Package diag records the diagnostics produced while transpiling.
//
// Every recorded error is printed to the reporter's sink as it happens and
// kept for later inspection. A Policy decides when the run must stop: once
// the error budget is spent, Report returns ErrTooManyErrors and the caller
// unwinds to the top-level driver, which abandons the run.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// Syntax covers unexpected tokens, missing terminators and unbalanced
	// braces. Lexical errors are reported as Syntax too.
	Syntax Kind = iota

	// Declaration covers duplicate names and missing type annotations.
	Declaration

	// Type covers incompatible initializers, assignments and operands, and
	// return mismatches.
	Type

	// Resolution covers undeclared variables and undefined functions.
	Resolution

	// Fatal stops the run immediately regardless of the budget.
	Fatal
)

var kindNames = [...]string{
	Syntax:      "syntax",
	Declaration: "declaration",
	Type:        "type",
	Resolution:  "resolution",
	Fatal:       "fatal",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Diagnostic is one recorded error.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Message string
}

// Error returns "Error on line N: message".
func (d Diagnostic) Error() string {
	return "Error on line " + strconv.Itoa(d.Line) + ": " + d.Message
}

// ErrTooManyErrors is returned by Report once the error budget is spent.
var ErrTooManyErrors = errors.New("too many errors")

// DefaultMaxErrors is the budget used when a Policy leaves MaxErrors unset.
const DefaultMaxErrors = 5

// Policy decides when recorded diagnostics become fatal.
type Policy struct {
	// MaxErrors is the number of recorded errors that ends the run.
	// Values <= 0 select DefaultMaxErrors.
	MaxErrors int
}

func (p Policy) maxErrors() int {
	if p.MaxErrors <= 0 {
		return DefaultMaxErrors
	}
	return p.MaxErrors
}

// Fatal reports whether a run that has recorded count errors, the last of
// kind last, must stop.
func (p Policy) Fatal(count int, last Kind) bool {
	return last == Fatal || count >= p.maxErrors()
}

// Reporter accumulates diagnostics. The zero value is not usable; create
// reporters with NewReporter.
type Reporter struct {
	out    io.Writer
	policy Policy
	diags  []Diagnostic
}

// NewReporter creates a reporter printing to out, which may be nil to
// record silently.
func NewReporter(out io.Writer, policy Policy) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out, policy: policy}
}

// Report records a diagnostic and prints it. It returns ErrTooManyErrors,
// after printing a final notice, when the policy says the run must stop.
func (r *Reporter) Report(d Diagnostic) error {
	r.diags = append(r.diags, d)
	fmt.Fprintln(r.out, d.Error())

	if r.policy.Fatal(len(r.diags), d.Kind) {
		fmt.Fprintln(r.out, "Too many errors, exiting.")
		return ErrTooManyErrors
	}
	return nil
}

// Reportf formats and records a diagnostic.
func (r *Reporter) Reportf(kind Kind, line int, format string, args ...any) error {
	return r.Report(Diagnostic{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Count returns the number of recorded diagnostics.
func (r *Reporter) Count() int {
	return len(r.diags)
}

// HasErrors reports whether anything was recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.diags) > 0
}

// Diagnostics returns a copy of the recorded diagnostics in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// Err joins the recorded diagnostics into one error, or returns nil when
// there are none. errors.As finds each Diagnostic in the result.
func (r *Reporter) Err() error {
	if len(r.diags) == 0 {
		return nil
	}
	errs := make([]error, len(r.diags))
	for i, d := range r.diags {
		errs[i] = d
	}
	return errors.Join(errs...)
}
