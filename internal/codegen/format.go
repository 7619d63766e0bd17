package codegen

import (
	"strconv"
	"strings"
)

// C syntax fragments.
const (
	includes = "#include <stdio.h>\n" +
		"#include <stdbool.h>\n" +
		"#include <string.h>\n" +
		"\n"

	indentUnit = "    "
	entryName  = "main"

	// concatName is reserved in source programs.
	concatName   = "w_concat"
	concatHelper = "#include <stdlib.h>\n" +
		"\n" +
		"static char* w_concat(const char* a, const char* b) {\n" +
		"    if (a == NULL) a = \"\";\n" +
		"    if (b == NULL) b = \"\";\n" +
		"    char* s = malloc(strlen(a) + strlen(b) + 1);\n" +
		"    strcpy(s, a);\n" +
		"    strcat(s, b);\n" +
		"    return s;\n" +
		"}\n" +
		"\n"
)

// cEscapes maps the characters that cannot appear raw in a C literal.
var cEscapes = map[rune]string{
	'\n': `\n`,
	'\t': `\t`,
	'\r': `\r`,
	0:    `\0`,
	'\\': `\\`,
}

// escape renders s for use between the given C quotes. Only the quote
// character in use is escaped.
func escape(s string, quote rune) string {
	var b strings.Builder
	for _, r := range s {
		if esc, ok := cEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r == quote {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StringLiteral renders s as a C string literal.
func StringLiteral(s string) string {
	return `"` + escape(s, '"') + `"`
}

// CharLiteral renders r as a C character literal.
func CharLiteral(r rune) string {
	return "'" + escape(string(r), '\'') + "'"
}

// FloatLiteral renders v as a C float literal: 2.5f, 3.0f.
func FloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "f"
}

// formatText renders log text for a printf format string.
func formatText(s string) string {
	return strings.ReplaceAll(escape(s, '"'), "%", "%%")
}
