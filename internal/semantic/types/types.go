// Package types implements the W type system.
//
// W has a closed set of six data types. Two relations are defined over them:
//
//   - Compatible is symmetric. It is used where operand order does not
//     matter, such as log arguments.
//   - CanConvert is directional. It decides whether a value of one type may
//     be stored in a location of another type (declarations, assignments)
//     and whether the code generator inserts a cast.
//
// OperationType computes the result type of a binary operation. The result
// never depends on which side an operand is on.
package types

import (
	"errors"
	"fmt"
)

// DataType is one of the six W data types.
type DataType int

const (
	// Invalid is the zero value. It marks an expression whose type could not
	// be determined because of an earlier error.
	Invalid DataType = iota
	Integer
	Real
	Char
	Bool
	String
	Void
)

// All lists every valid data type, in declaration order.
var All = []DataType{Integer, Real, Char, Bool, String, Void}

var typeNames = [...]string{
	Invalid: "<invalid>",
	Integer: "num",
	Real:    "real",
	Char:    "chr",
	Bool:    "bool",
	String:  "str",
	Void:    "zil",
}

// String returns the W spelling of the type, e.g. "num".
func (t DataType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// IsValid reports whether t is one of the six data types.
func (t DataType) IsValid() bool {
	return t >= Integer && t <= Void
}

// IsNumeric reports whether values of t take part in arithmetic.
func (t DataType) IsNumeric() bool {
	switch t {
	case Integer, Real, Char, Bool:
		return true
	default:
		return false
	}
}

// Compatible reports whether a and b are interchangeable in either order:
// they are equal, or they are the pair {Real, Integer}, or the pair
// {Integer, Bool}. Char is not compatible with Integer here even though
// CanConvert allows Char to Integer.
func Compatible(a, b DataType) bool {
	if a == b {
		return a.IsValid()
	}
	pair := func(x, y DataType) bool {
		return (a == x && b == y) || (a == y && b == x)
	}
	return pair(Real, Integer) || pair(Integer, Bool)
}

// conversions maps a target type to the source types it accepts besides
// itself.
var conversions = map[DataType][]DataType{
	Real:    {Integer, Char, Bool},
	Integer: {Char, Bool},
	Bool:    {Integer, Real, Char},
	Char:    {Integer},
}

// CanConvert reports whether a value of type from may be implicitly
// converted to type to. String and Void accept only themselves.
func CanConvert(from, to DataType) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	for _, accepted := range conversions[to] {
		if accepted == from {
			return true
		}
	}
	return false
}

// Operator is a binary arithmetic operator.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

var operatorSymbols = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
}

// String returns the operator symbol.
func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return "?"
}

// Errors returned by OperationType.
var (
	ErrVoidOperand     = errors.New("void value used in expression")
	ErrStringOperation = errors.New("strings only support '+' with another string")
	ErrInvalidOperand  = errors.New("operand has no type")
)

// OperationType returns the type of `left op right`.
//
// A Void operand is always an error. String takes part only in `+` with
// another String. Otherwise Real wins if either side is Real and the result
// is Integer, so Char and Bool widen silently.
func OperationType(left, right DataType, op Operator) (DataType, error) {
	switch {
	case !left.IsValid() || !right.IsValid():
		return Invalid, ErrInvalidOperand
	case left == Void || right == Void:
		return Invalid, ErrVoidOperand
	case left == String || right == String:
		if op == Add && left == String && right == String {
			return String, nil
		}
		return Invalid, fmt.Errorf("%w: cannot apply '%s' to %s and %s",
			ErrStringOperation, op, left, right)
	case left == Real || right == Real:
		return Real, nil
	default:
		return Integer, nil
	}
}
