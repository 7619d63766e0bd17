package mdtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestExtract_Basic(t *testing.T) {
	doc := "# Suite\n" +
		"\n" +
		"Some prose.\n" +
		"\n" +
		"## Test: returns one\n" +
		"\n" +
		fence + "w\n" +
		"fun w(): num { ret 1; }\n" +
		fence + "\n" +
		"\n" +
		fence + "c\n" +
		"int main(void) {\n" +
		"    return 1;\n" +
		"}\n" +
		fence + "\n"

	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)

	c := cases[0]
	be.Equal(t, c.Name, "returns one")
	be.Equal(t, c.Line, 5)
	be.Equal(t, c.Source, "fun w(): num { ret 1; }")
	be.Equal(t, len(c.Assertions), 1)
	be.Equal(t, c.Assertions[0].Kind, FenceC)
	be.Equal(t, c.Assertions[0].Line, 11)

	code, ok := c.Expect(FenceC)
	be.True(t, ok)
	be.Equal(t, code, "int main(void) {\n    return 1;\n}")

	_, ok = c.Expect(FenceAST)
	be.True(t, !ok)
}

func TestExtract_MultipleCases(t *testing.T) {
	doc := "## Test: first\n" +
		fence + "w\nfun w() {}\n" + fence + "\n" +
		fence + "ast\n(program\n  (fun w () zil entry))\n" + fence + "\n" +
		fence + "errors\n" + fence + "\n" +
		"\n" +
		"### Test: second\n" +
		fence + "w\ndec a;\n" + fence + "\n" +
		fence + "errors\n" +
		"Error on line 1: Missing type annotation for variable 'a'\n" +
		"\n" +
		fence + "\n"

	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "first")
	be.Equal(t, len(cases[0].Assertions), 2)
	errs, ok := cases[0].Errors()
	be.True(t, ok)
	be.Equal(t, errs, []string{})

	be.Equal(t, cases[1].Name, "second")
	errs, ok = cases[1].Errors()
	be.True(t, ok)
	be.Equal(t, errs, []string{"Error on line 1: Missing type annotation for variable 'a'"})
}

func TestExtract_IgnoresPlainFences(t *testing.T) {
	doc := fence + "\nnot a test\n" + fence + "\n" +
		"## Notes\n" +
		fence + "\nstill not a test\n" + fence + "\n"

	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 0)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "fence outside test",
			doc:  "# Suite\n\n" + fence + "w\nfun w() {}\n" + fence + "\n",
			want: "line 3: w fence outside of a test case",
		},
		{
			name: "unknown language",
			doc:  "## Test: x\n" + fence + "python\nprint(1)\n" + fence + "\n",
			want: `line 2: unknown fence language "python"`,
		},
		{
			name: "two sources",
			doc: "## Test: x\n" +
				fence + "w\nfun w() {}\n" + fence + "\n" +
				fence + "w\nfun f() {}\n" + fence + "\n",
			want: `line 5: test "x" has more than one source fence`,
		},
		{
			name: "no source",
			doc:  "## Test: x\n" + fence + "c\nint x;\n" + fence + "\n",
			want: `test "x" has no source fence`,
		},
		{
			name: "no assertions",
			doc:  "## Test: x\n" + fence + "w\nfun w() {}\n" + fence + "\n",
			want: `test "x" has no assertion fences`,
		},
		{
			name: "previous case validated",
			doc: "## Test: x\n" + fence + "w\nfun w() {}\n" + fence + "\n" +
				"## Test: y\n",
			want: `test "x" has no assertion fences`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.doc))
			be.Err(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.md")
	doc := "## Test: x\n" + fence + "w\nfun w() {}\n" + fence + "\n" + fence + "c\nint main(void);\n" + fence + "\n"
	be.Err(t, os.WriteFile(path, []byte(doc), 0o644), nil)

	cases, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.md"))
	be.Err(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.md")
	be.Err(t, os.WriteFile(bad, []byte("## Test: y\n"), 0o644), nil)
	_, err = Load(bad)
	be.Err(t, err, "bad.md: test \"y\" has no source fence")
}

func TestNormalizeSExpr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(a b)", "(a b)"},
		{"( a   b )", "(a b)"},
		{"(program\n  (fun w () zil entry\n    (ret)))", "(program (fun w () zil entry (ret)))"},
		{"(str \"a  b\")", "(str \"a  b\")"},
		{"(str \"say \\\"hi  there\\\"\")", "(str \"say \\\"hi  there\\\"\")"},
		{"(chr ' ')", "(chr ' ')"},
		{"(log \"x\"  %d:1)", "(log \"x\" %d:1)"},
		{"  \n", ""},
	}
	for _, tt := range tests {
		be.Equal(t, NormalizeSExpr(tt.in), tt.want)
	}
}
