package runtime

import (
	"fmt"
	"io"
)

// Builtins returns the registry of built-in functions. The registry is
// injected into the evaluator; builtins are not part of any
// environment and cannot be shadowed away by accident, but a let
// binding with the same name takes precedence on lookup.
func Builtins(w io.Writer) map[string]*BuiltinVal {
	builtins := map[string]*BuiltinVal{}
	define := func(name string, fn BuiltinFn) {
		builtins[name] = &BuiltinVal{Name: name, Fn: fn}
	}

	define("len", func(args []Value) Value {
		if len(args) != 1 {
			return Errorf("wrong number of arguments: expected 1, got %d", len(args))
		}
		switch v := args[0].(type) {
		case StrVal:
			return IntVal(len(string(v)))
		case *ArrayVal:
			return IntVal(len(v.Elements))
		case *HashVal:
			return IntVal(len(v.Order))
		default:
			return Errorf("argument to 'len' not supported, got '%s'", args[0].TypeName())
		}
	})

	define("first", func(args []Value) Value {
		if len(args) != 1 {
			return Errorf("wrong number of arguments: expected 1, got %d", len(args))
		}
		arr, ok := args[0].(*ArrayVal)
		if !ok {
			return Errorf("argument to 'first' must be an array, got '%s'", args[0].TypeName())
		}
		if len(arr.Elements) == 0 {
			return NullVal{}
		}
		return arr.Elements[0]
	})

	define("last", func(args []Value) Value {
		if len(args) != 1 {
			return Errorf("wrong number of arguments: expected 1, got %d", len(args))
		}
		arr, ok := args[0].(*ArrayVal)
		if !ok {
			return Errorf("argument to 'last' must be an array, got '%s'", args[0].TypeName())
		}
		if len(arr.Elements) == 0 {
			return NullVal{}
		}
		return arr.Elements[len(arr.Elements)-1]
	})

	define("rest", func(args []Value) Value {
		if len(args) != 1 {
			return Errorf("wrong number of arguments: expected 1, got %d", len(args))
		}
		arr, ok := args[0].(*ArrayVal)
		if !ok {
			return Errorf("argument to 'rest' must be an array, got '%s'", args[0].TypeName())
		}
		if len(arr.Elements) == 0 {
			return NullVal{}
		}
		rest := make([]Value, len(arr.Elements)-1)
		copy(rest, arr.Elements[1:])
		return &ArrayVal{Elements: rest}
	})

	define("push", func(args []Value) Value {
		if len(args) != 2 {
			return Errorf("wrong number of arguments: expected 2, got %d", len(args))
		}
		arr, ok := args[0].(*ArrayVal)
		if !ok {
			return Errorf("first argument to 'push' must be an array, got '%s'", args[0].TypeName())
		}
		// Arrays are immutable: push returns a new array.
		elements := make([]Value, len(arr.Elements)+1)
		copy(elements, arr.Elements)
		elements[len(arr.Elements)] = args[1]
		return &ArrayVal{Elements: elements}
	})

	define("puts", func(args []Value) Value {
		fmt.Fprintln(w, ValuesString(args, " "))
		return NullVal{}
	})

	define("typeOf", func(args []Value) Value {
		if len(args) != 1 {
			return Errorf("wrong number of arguments: expected 1, got %d", len(args))
		}
		return StrVal(args[0].TypeName())
	})

	define("keys", func(args []Value) Value {
		if len(args) != 1 {
			return Errorf("wrong number of arguments: expected 1, got %d", len(args))
		}
		hash, ok := args[0].(*HashVal)
		if !ok {
			return Errorf("argument to 'keys' must be a hash, got '%s'", args[0].TypeName())
		}
		elements := make([]Value, len(hash.Order))
		for i, k := range hash.Order {
			elements[i] = hash.Pairs[k].Key
		}
		return &ArrayVal{Elements: elements}
	})

	return builtins
}
