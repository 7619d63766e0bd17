package diag

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{Kind: Resolution, Line: 7, Message: "Undefined variable 'x'"}
	be.Equal(t, d.Error(), "Error on line 7: Undefined variable 'x'")
}

func TestKind_String(t *testing.T) {
	be.Equal(t, Syntax.String(), "syntax")
	be.Equal(t, Fatal.String(), "fatal")
	be.Equal(t, Kind(12).String(), "Kind(12)")
}

func TestReporter_PrintsAsItRecords(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out, Policy{})

	be.Err(t, r.Reportf(Syntax, 1, "Unexpected token %s", "'}'"), nil)
	be.Err(t, r.Reportf(Type, 3, "bad"), nil)

	be.Equal(t, out.String(), "Error on line 1: Unexpected token '}'\nError on line 3: bad\n")
	be.Equal(t, r.Count(), 2)
	be.True(t, r.HasErrors())
}

func TestReporter_DefaultBudget(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out, Policy{})

	for i := 1; i < DefaultMaxErrors; i++ {
		be.Err(t, r.Reportf(Syntax, i, "e%d", i), nil)
	}
	be.Err(t, r.Reportf(Syntax, 5, "e5"), ErrTooManyErrors)
	be.True(t, strings.HasSuffix(out.String(), "Error on line 5: e5\nToo many errors, exiting.\n"))
	be.Equal(t, r.Count(), 5)
}

func TestReporter_CustomBudget(t *testing.T) {
	r := NewReporter(nil, Policy{MaxErrors: 2})
	be.Err(t, r.Reportf(Type, 1, "a"), nil)
	be.Err(t, r.Reportf(Type, 2, "b"), ErrTooManyErrors)
}

func TestReporter_FatalKind(t *testing.T) {
	r := NewReporter(nil, Policy{MaxErrors: 100})
	be.Err(t, r.Report(Diagnostic{Kind: Fatal, Line: 1, Message: "out of memory"}), ErrTooManyErrors)
}

func TestReporter_Err(t *testing.T) {
	r := NewReporter(nil, Policy{})
	be.Err(t, r.Err(), nil)

	r.Reportf(Declaration, 2, "Variable 'x' already declared")
	r.Reportf(Resolution, 4, "Undefined function 'f'")

	err := r.Err()
	be.Err(t, err, "Error on line 2: Variable 'x' already declared")
	be.Err(t, err, "Error on line 4: Undefined function 'f'")

	var d Diagnostic
	be.True(t, errors.As(err, &d))
	be.Equal(t, d.Kind, Declaration)
}

func TestReporter_DiagnosticsIsCopy(t *testing.T) {
	r := NewReporter(nil, Policy{})
	r.Reportf(Syntax, 1, "x")

	ds := r.Diagnostics()
	ds[0].Message = "changed"
	be.Equal(t, r.Diagnostics()[0].Message, "x")
}

func TestPolicy_Fatal(t *testing.T) {
	p := Policy{MaxErrors: 3}
	be.Equal(t, p.Fatal(2, Syntax), false)
	be.True(t, p.Fatal(3, Syntax))
	be.True(t, p.Fatal(1, Fatal))
	be.True(t, Policy{}.Fatal(5, Type))
}
