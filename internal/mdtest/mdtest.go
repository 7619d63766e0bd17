// Package mdtest reads golden test cases written as Markdown.
//
// A case starts at a heading "Test: name" and holds exactly one fenced
// block of W source plus at least one assertion fence:
//
//	## Test: adds two numbers
//
//	```w
//	fun w(): num { ret 1 + 2; }
//	```
//
//	```c
//	...expected C output...
//	```
//
// Assertion fences are "c" (generated code), "errors" (one diagnostic per
// line, "Error on line N: message") and "ast" (an S-expression as printed
// by ast.Dump, compared with NormalizeSExpr). Fences without a language are
// ignored so prose can carry examples.
package mdtest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence is the language tag of a fenced block.
type Fence string

const (
	FenceSource Fence = "w"
	FenceC      Fence = "c"
	FenceErrors Fence = "errors"
	FenceAST    Fence = "ast"
)

const headingPrefix = "Test: "

func (f Fence) isAssertion() bool {
	return f == FenceC || f == FenceErrors || f == FenceAST
}

// Assertion is one expected result of a case.
type Assertion struct {
	Kind    Fence
	Content string
	Line    int
}

// Case is one golden test.
type Case struct {
	Name       string
	Source     string
	Line       int // line of the heading
	Assertions []Assertion
}

// Expect returns the content of the first assertion of the given kind.
func (c Case) Expect(kind Fence) (string, bool) {
	for _, a := range c.Assertions {
		if a.Kind == kind {
			return a.Content, true
		}
	}
	return "", false
}

// Errors returns the lines of the "errors" assertion. An empty fence
// yields an empty, non-nil slice.
func (c Case) Errors() ([]string, bool) {
	content, ok := c.Expect(FenceErrors)
	if !ok {
		return nil, false
	}
	lines := []string{}
	for _, l := range strings.Split(content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines, true
}

// Load reads and extracts the cases of a Markdown file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Extract parses a Markdown document and returns its cases in order.
func Extract(source []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		cases   []Case
		current *Case
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := current.validate(); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := gast.Walk(doc, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *gast.Heading:
			title := nodeText(n, source)
			if !strings.HasPrefix(title, headingPrefix) {
				return gast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return gast.WalkStop, err
			}
			current = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(title, headingPrefix)),
				Line: lineOf(n, source),
			}
			return gast.WalkSkipChildren, nil

		case *gast.FencedCodeBlock:
			lang := Fence(n.Language(source))
			line := lineOf(n, source)
			if lang == "" {
				return gast.WalkContinue, nil
			}
			if lang != FenceSource && !lang.isAssertion() {
				return gast.WalkStop, fmt.Errorf("line %d: unknown fence language %q", line, lang)
			}
			if current == nil {
				return gast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, lang)
			}

			content := strings.TrimRight(blockContent(n, source), "\n")
			if lang == FenceSource {
				if current.Source != "" {
					return gast.WalkStop, fmt.Errorf("line %d: test %q has more than one source fence", line, current.Name)
				}
				current.Source = content
				return gast.WalkContinue, nil
			}
			current.Assertions = append(current.Assertions, Assertion{Kind: lang, Content: content, Line: line})
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *Case) validate() error {
	if c.Source == "" {
		return fmt.Errorf("test %q has no source fence", c.Name)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", c.Name)
	}
	return nil
}

func nodeText(node gast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gast.Walk(node, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if t, ok := n.(*gast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return gast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(block *gast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based line a block node starts on. An empty fenced
// block has no lines, so its info string is used instead.
func lineOf(node gast.Node, source []byte) int {
	start := -1
	if node.Lines().Len() > 0 {
		start = node.Lines().At(0).Start
	}
	if fence, ok := node.(*gast.FencedCodeBlock); ok && fence.Info != nil {
		start = fence.Info.Segment.Start
	}
	if start < 0 {
		return 1
	}
	if start > len(source) {
		start = len(source)
	}
	return bytes.Count(source[:start], []byte{'\n'}) + 1
}

// NormalizeSExpr collapses the layout of an S-expression so that two dumps
// compare equal whatever their indentation. Runs of whitespace become one
// space, and no space is kept after "(" or before ")". Quoted strings and
// characters are copied unchanged.
func NormalizeSExpr(s string) string {
	var b strings.Builder
	var last byte
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			space = true
			continue
		case ')':
		default:
			if space && last != 0 && last != '(' {
				b.WriteByte(' ')
			}
		}
		space = false

		if c == '"' || c == '\'' {
			end := quoteEnd(s, i)
			b.WriteString(s[i:end])
			last, i = s[end-1], end-1
			continue
		}
		b.WriteByte(c)
		last = c
	}
	return b.String()
}

// quoteEnd returns the index just past the quoted literal starting at i.
func quoteEnd(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(s)
}
