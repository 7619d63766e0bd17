// Package registry holds the read-only lookup tables of the transpiler.
//
// The type registry maps every W data type to its type keyword, its W and C
// spellings, its printf placeholder and the C literal used to initialize an
// undeclared value. The token registry describes every token type. Both are
// built once from the literal tables in this package and never change; the
// package-level Types and Tokens functions return the shared instances.
//
// Lookups never fail loudly: unknown keys report false.
package registry

import (
	"sync"

	"github.com/hassan/wlang/internal/container"
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// TypeRecord describes one W data type.
type TypeRecord struct {
	Type        types.DataType
	Token       lexer.TokenType
	Name        string // W spelling, e.g. "num"
	CType       string // C spelling, e.g. "int"
	Placeholder string // printf conversion, e.g. "%d"
	Default     string // C literal for an uninitialized value
}

var typeRecords = []TypeRecord{
	{types.Integer, lexer.TokenNum, "num", "int", "%d", "0"},
	{types.Real, lexer.TokenReal, "real", "float", "%f", "0.0f"},
	{types.Char, lexer.TokenChr, "chr", "char", "%c", `'\0'`},
	{types.Bool, lexer.TokenBool, "bool", "bool", "%d", "false"},
	{types.String, lexer.TokenStr, "str", "char*", "%s", "NULL"},
	{types.Void, lexer.TokenZil, "zil", "void", "", ""},
}

// TypeRegistry indexes the type records by data type, by type keyword token,
// by W name and by C name.
type TypeRegistry struct {
	byType  *container.Map[types.DataType, *TypeRecord]
	byToken *container.Map[lexer.TokenType, *TypeRecord]
	byName  *container.Map[string, *TypeRecord]
	byCType *container.Map[string, *TypeRecord]
	records []TypeRecord
}

// NewTypeRegistry builds a registry from the built-in type table.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		byType: container.New(16, container.Config[types.DataType, *TypeRecord]{
			Keys: container.IntKeys[types.DataType]{},
		}),
		byToken: container.New(16, container.Config[lexer.TokenType, *TypeRecord]{
			Keys: container.IntKeys[lexer.TokenType]{},
		}),
		byName: container.New(16, container.Config[string, *TypeRecord]{
			Keys: container.StringKeys{},
		}),
		byCType: container.New(16, container.Config[string, *TypeRecord]{
			Keys: container.StringKeys{},
		}),
		records: make([]TypeRecord, len(typeRecords)),
	}
	copy(r.records, typeRecords)

	for i := range r.records {
		rec := &r.records[i]
		r.byType.Put(rec.Type, rec)
		r.byToken.Put(rec.Token, rec)
		r.byName.Put(rec.Name, rec)
		r.byCType.Put(rec.CType, rec)
	}
	return r
}

func lookup[K any](m *container.Map[K, *TypeRecord], key K) (TypeRecord, bool) {
	rec, ok := m.Get(key)
	if !ok {
		return TypeRecord{}, false
	}
	return *rec, true
}

// ByType returns the record of a data type.
func (r *TypeRegistry) ByType(t types.DataType) (TypeRecord, bool) {
	return lookup(r.byType, t)
}

// ByToken returns the record of a type keyword token such as lexer.TokenNum.
func (r *TypeRegistry) ByToken(tt lexer.TokenType) (TypeRecord, bool) {
	return lookup(r.byToken, tt)
}

// ByName returns the record of a W type name such as "real".
func (r *TypeRegistry) ByName(name string) (TypeRecord, bool) {
	return lookup(r.byName, name)
}

// ByCType returns the record of a C type name such as "char*".
func (r *TypeRegistry) ByCType(name string) (TypeRecord, bool) {
	return lookup(r.byCType, name)
}

// Records returns a copy of every record in table order.
func (r *TypeRegistry) Records() []TypeRecord {
	out := make([]TypeRecord, len(r.records))
	copy(out, r.records)
	return out
}

// CType returns the C spelling of t, or "void" for an unknown type.
func (r *TypeRegistry) CType(t types.DataType) string {
	if rec, ok := r.ByType(t); ok {
		return rec.CType
	}
	return "void"
}

// Placeholder returns the printf conversion for t, or "" if t has none.
func (r *TypeRegistry) Placeholder(t types.DataType) string {
	rec, _ := r.ByType(t)
	return rec.Placeholder
}

// Default returns the C literal for an uninitialized value of type t.
func (r *TypeRegistry) Default(t types.DataType) string {
	rec, _ := r.ByType(t)
	return rec.Default
}

// DataTypeForToken converts a type keyword token to its data type. Reserved
// type keywords such as vec have no data type and report false.
func (r *TypeRegistry) DataTypeForToken(tt lexer.TokenType) (types.DataType, bool) {
	rec, ok := r.ByToken(tt)
	return rec.Type, ok
}

// TokenForDataType converts a data type back to its type keyword token.
func (r *TypeRegistry) TokenForDataType(t types.DataType) (lexer.TokenType, bool) {
	rec, ok := r.ByType(t)
	return rec.Token, ok
}

// Types returns the shared type registry.
var Types = sync.OnceValue(NewTypeRegistry)
