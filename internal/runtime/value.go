// Package runtime implements the tree-walking evaluator and runtime
// value system for monkey-lang.
package runtime

import (
	"fmt"
	"hash/fnv"
	"strings"

	"monkey-lang/internal/ast"
)

// Value is the interface for all runtime values.
type Value interface {
	TypeName() string
	String() string
}

// ---- Primitive values ----

// IntVal represents an integer value.
type IntVal int64

func (v IntVal) TypeName() string { return "int" }
func (v IntVal) String() string   { return fmt.Sprintf("%d", int64(v)) }

// BoolVal represents a boolean value.
type BoolVal bool

func (v BoolVal) TypeName() string { return "bool" }
func (v BoolVal) String() string   { return fmt.Sprintf("%t", bool(v)) }

// StrVal represents a string value.
type StrVal string

func (v StrVal) TypeName() string { return "string" }
func (v StrVal) String() string   { return string(v) }

// NullVal represents null.
type NullVal struct{}

func (v NullVal) TypeName() string { return "null" }
func (v NullVal) String() string   { return "null" }

// ---- Callable values ----

// FuncVal represents a user-defined function. It captures the
// environment active at its definition site, shared by reference: this
// is what makes closures work.
type FuncVal struct {
	Params  []*ast.IdentExpr
	Body    *ast.BlockStmt
	Closure *Environment
}

func (v *FuncVal) TypeName() string { return "function" }
func (v *FuncVal) String() string {
	names := make([]string, len(v.Params))
	for i, p := range v.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("<fn(%s)>", strings.Join(names, ", "))
}

// BuiltinFn is the Go signature for built-in functions. Failures are
// reported as error values, not Go errors.
type BuiltinFn func(args []Value) Value

// BuiltinVal represents a built-in (native) function.
type BuiltinVal struct {
	Name string
	Fn   BuiltinFn
}

func (v *BuiltinVal) TypeName() string { return "builtin" }
func (v *BuiltinVal) String() string   { return fmt.Sprintf("<builtin %s>", v.Name) }

// ---- Array value ----

// ArrayVal represents an array value. Arrays are never mutated in
// place; builtins like push return fresh arrays.
type ArrayVal struct {
	Elements []Value
}

func (v *ArrayVal) TypeName() string { return "array" }
func (v *ArrayVal) String() string {
	parts := make([]string, len(v.Elements))
	for i, elem := range v.Elements {
		parts[i] = quoted(elem)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ---- Hash value ----

// HashKey is the comparable form of a hashable value. Only integers,
// booleans and strings can be hash keys.
type HashKey struct {
	Type  string
	Value uint64
}

// Hashable is implemented by value types usable as hash keys.
type Hashable interface {
	HashKey() HashKey
}

func (v IntVal) HashKey() HashKey {
	return HashKey{Type: v.TypeName(), Value: uint64(int64(v))}
}

func (v BoolVal) HashKey() HashKey {
	if v {
		return HashKey{Type: v.TypeName(), Value: 1}
	}
	return HashKey{Type: v.TypeName(), Value: 0}
}

func (v StrVal) HashKey() HashKey {
	h := fnv.New64a()
	h.Write([]byte(v))
	return HashKey{Type: v.TypeName(), Value: h.Sum64()}
}

// HashPair keeps the original key value next to its mapped value so
// hashes can print and enumerate their real keys.
type HashPair struct {
	Key   Value
	Value Value
}

// HashVal represents a hash map with insertion-ordered pairs.
type HashVal struct {
	Pairs map[HashKey]HashPair
	Order []HashKey // insertion order of keys
}

// NewHash creates an empty hash value.
func NewHash() *HashVal {
	return &HashVal{Pairs: make(map[HashKey]HashPair)}
}

// Put inserts or replaces a pair, preserving first-insertion order.
func (v *HashVal) Put(key HashKey, pair HashPair) {
	if _, exists := v.Pairs[key]; !exists {
		v.Order = append(v.Order, key)
	}
	v.Pairs[key] = pair
}

func (v *HashVal) TypeName() string { return "hash" }
func (v *HashVal) String() string {
	parts := make([]string, len(v.Order))
	for i, k := range v.Order {
		pair := v.Pairs[k]
		parts[i] = fmt.Sprintf("%s: %s", quoted(pair.Key), quoted(pair.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ---- Control-flow and error values ----

// ReturnVal wraps the value of a return statement while it unwinds
// enclosing blocks. It is unwrapped at the function-call boundary and
// is never observable from language code.
type ReturnVal struct {
	Value Value
}

func (v *ReturnVal) TypeName() string { return "return" }
func (v *ReturnVal) String() string   { return v.Value.String() }

// ErrVal represents a runtime error. It flows through the same return
// channel as ordinary values and short-circuits all enclosing
// evaluation up to the Run entry point.
type ErrVal struct {
	Message string
}

func (v *ErrVal) TypeName() string { return "error" }
func (v *ErrVal) String() string   { return "error: " + v.Message }

// Errorf creates a runtime error value.
func Errorf(format string, args ...interface{}) *ErrVal {
	return &ErrVal{Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether a value is a runtime error.
func IsError(v Value) bool {
	_, ok := v.(*ErrVal)
	return ok
}

// ---- Truthiness ----

// IsTruthy returns the truthiness of a value: only false and null are
// falsy. All other values, including 0 and "", are truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NullVal:
		return false
	case BoolVal:
		return bool(val)
	default:
		return true
	}
}

// ---- Helpers ----

// quoted formats a value for display inside a container, quoting
// strings so they read back unambiguously.
func quoted(v Value) string {
	if s, ok := v.(StrVal); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return v.String()
}

// ValuesString formats a slice of values with a separator.
func ValuesString(vals []Value, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}

// valuesEqual compares two values by value equality for the primitive
// types and by reference for everything else.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case IntVal:
		if bv, ok := b.(IntVal); ok {
			return int64(av) == int64(bv)
		}
	case BoolVal:
		if bv, ok := b.(BoolVal); ok {
			return bool(av) == bool(bv)
		}
	case StrVal:
		if bv, ok := b.(StrVal); ok {
			return string(av) == string(bv)
		}
	case NullVal:
		_, ok := b.(NullVal)
		return ok
	}
	return a == b
}
