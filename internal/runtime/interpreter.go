package runtime

import (
	"io"

	"monkey-lang/internal/ast"
	"monkey-lang/internal/token"
)

// Evaluator walks the AST and evaluates it against an Environment.
// Runtime failures are error values flowing through the ordinary
// result channel; the evaluator itself never recovers from them.
type Evaluator struct {
	builtins map[string]*BuiltinVal
}

// NewEvaluator creates an evaluator whose builtins write to output.
func NewEvaluator(output io.Writer) *Evaluator {
	return &Evaluator{builtins: Builtins(output)}
}

// Eval evaluates a node against an environment, producing exactly one
// value. Error values and return wrappers short-circuit enclosing
// evaluation.
func (e *Evaluator) Eval(node ast.Node, env *Environment) Value {
	switch n := node.(type) {
	// ---- Statements ----
	case *ast.Program:
		return e.evalProgram(n, env)

	case *ast.LetStmt:
		val := e.Eval(n.Value, env)
		if IsError(val) {
			return val
		}
		env.Set(n.Name.Name, val)
		return NullVal{}

	case *ast.ReturnStmt:
		val := e.Eval(n.Value, env)
		if IsError(val) {
			return val
		}
		return &ReturnVal{Value: val}

	case *ast.ExprStmt:
		return e.Eval(n.Expr, env)

	case *ast.BlockStmt:
		return e.evalBlock(n, env)

	// ---- Expressions ----
	case *ast.IntLiteral:
		return IntVal(n.Value)

	case *ast.BoolLiteral:
		return BoolVal(n.Value)

	case *ast.StringLiteral:
		return StrVal(n.Value)

	case *ast.IdentExpr:
		return e.evalIdent(n, env)

	case *ast.PrefixExpr:
		return e.evalPrefix(n, env)

	case *ast.InfixExpr:
		return e.evalInfix(n, env)

	case *ast.IfExpr:
		return e.evalIf(n, env)

	case *ast.FuncLiteral:
		return &FuncVal{Params: n.Params, Body: n.Body, Closure: env}

	case *ast.CallExpr:
		return e.evalCall(n, env)

	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, env)

	case *ast.HashLiteral:
		return e.evalHashLiteral(n, env)

	case *ast.IndexExpr:
		return e.evalIndex(n, env)

	default:
		return Errorf("unhandled node type: %T", node)
	}
}

// evalProgram evaluates top-level statements in order. The program's
// result is the last statement's value; a top-level return or error
// stops evaluation early, with the return unwrapped to its inner value.
func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Value {
	var result Value = NullVal{}

	for _, stmt := range program.Stmts {
		result = e.Eval(stmt, env)
		switch r := result.(type) {
		case *ReturnVal:
			return r.Value
		case *ErrVal:
			return r
		}
	}
	return result
}

// evalBlock evaluates a block's statements in order, yielding the last
// statement's value. Return wrappers and errors stop the loop but stay
// wrapped: only the call boundary (or the program top) unwraps them.
func (e *Evaluator) evalBlock(block *ast.BlockStmt, env *Environment) Value {
	var result Value = NullVal{}

	for _, stmt := range block.Stmts {
		result = e.Eval(stmt, env)
		switch result.(type) {
		case *ReturnVal, *ErrVal:
			return result
		}
	}
	return result
}

func (e *Evaluator) evalIdent(n *ast.IdentExpr, env *Environment) Value {
	if val, ok := env.Get(n.Name); ok {
		return val
	}
	if builtin, ok := e.builtins[n.Name]; ok {
		return builtin
	}
	return Errorf("identifier not found: '%s'", n.Name)
}

func (e *Evaluator) evalPrefix(n *ast.PrefixExpr, env *Environment) Value {
	operand := e.Eval(n.Operand, env)
	if IsError(operand) {
		return operand
	}

	switch n.Op {
	case token.BANG:
		return BoolVal(!IsTruthy(operand))
	case token.MINUS:
		if v, ok := operand.(IntVal); ok {
			return IntVal(-int64(v))
		}
		return Errorf("unknown operator: '-' on '%s'", operand.TypeName())
	default:
		return Errorf("unknown operator: '%s'", n.Op)
	}
}

func (e *Evaluator) evalInfix(n *ast.InfixExpr, env *Environment) Value {
	left := e.Eval(n.Left, env)
	if IsError(left) {
		return left
	}
	right := e.Eval(n.Right, env)
	if IsError(right) {
		return right
	}

	leftInt, leftIsInt := left.(IntVal)
	rightInt, rightIsInt := right.(IntVal)
	if leftIsInt && rightIsInt {
		return evalIntInfix(n.Op, leftInt, rightInt)
	}

	leftStr, leftIsStr := left.(StrVal)
	rightStr, rightIsStr := right.(StrVal)
	if leftIsStr && rightIsStr && n.Op == token.PLUS {
		return StrVal(string(leftStr) + string(rightStr))
	}

	switch n.Op {
	case token.EQ:
		return BoolVal(valuesEqual(left, right))
	case token.NEQ:
		return BoolVal(!valuesEqual(left, right))
	}

	if left.TypeName() != right.TypeName() {
		return Errorf("type mismatch: '%s' %s '%s'", left.TypeName(), n.Op, right.TypeName())
	}
	return Errorf("unknown operator: '%s' %s '%s'", left.TypeName(), n.Op, right.TypeName())
}

func evalIntInfix(op token.Kind, left, right IntVal) Value {
	l, r := int64(left), int64(right)

	switch op {
	case token.PLUS:
		return IntVal(l + r)
	case token.MINUS:
		return IntVal(l - r)
	case token.STAR:
		return IntVal(l * r)
	case token.SLASH:
		if r == 0 {
			return Errorf("division by zero")
		}
		return IntVal(l / r) // truncating integer division
	case token.LT:
		return BoolVal(l < r)
	case token.GT:
		return BoolVal(l > r)
	case token.EQ:
		return BoolVal(l == r)
	case token.NEQ:
		return BoolVal(l != r)
	default:
		return Errorf("unknown operator: 'int' %s 'int'", op)
	}
}

func (e *Evaluator) evalIf(n *ast.IfExpr, env *Environment) Value {
	cond := e.Eval(n.Condition, env)
	if IsError(cond) {
		return cond
	}

	if IsTruthy(cond) {
		return e.evalBlock(n.Consequence, env)
	}
	if n.Alternative != nil {
		return e.evalBlock(n.Alternative, env)
	}
	return NullVal{}
}

func (e *Evaluator) evalCall(n *ast.CallExpr, env *Environment) Value {
	callee := e.Eval(n.Callee, env)
	if IsError(callee) {
		return callee
	}

	args := make([]Value, len(n.Args))
	for i, argExpr := range n.Args {
		val := e.Eval(argExpr, env)
		if IsError(val) {
			return val
		}
		args[i] = val
	}

	return e.applyFunc(callee, args)
}

// applyFunc invokes a function or builtin value. A user-function call
// binds parameters in a fresh scope enclosed by the function's
// captured environment, not the caller's.
func (e *Evaluator) applyFunc(callee Value, args []Value) Value {
	switch fn := callee.(type) {
	case *FuncVal:
		if len(args) != len(fn.Params) {
			return Errorf("wrong number of arguments: expected %d, got %d", len(fn.Params), len(args))
		}
		callEnv := NewEnclosed(fn.Closure)
		for i, param := range fn.Params {
			callEnv.Set(param.Name, args[i])
		}
		result := e.evalBlock(fn.Body, callEnv)
		if ret, ok := result.(*ReturnVal); ok {
			return ret.Value
		}
		return result

	case *BuiltinVal:
		return fn.Fn(args)

	default:
		return Errorf("not a function: '%s'", callee.TypeName())
	}
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, env *Environment) Value {
	elements := make([]Value, len(n.Elements))
	for i, elemExpr := range n.Elements {
		val := e.Eval(elemExpr, env)
		if IsError(val) {
			return val
		}
		elements[i] = val
	}
	return &ArrayVal{Elements: elements}
}

func (e *Evaluator) evalHashLiteral(n *ast.HashLiteral, env *Environment) Value {
	hash := NewHash()

	for i := range n.Keys {
		key := e.Eval(n.Keys[i], env)
		if IsError(key) {
			return key
		}
		hashable, ok := key.(Hashable)
		if !ok {
			return Errorf("unusable as hash key: '%s'", key.TypeName())
		}
		value := e.Eval(n.Values[i], env)
		if IsError(value) {
			return value
		}
		hash.Put(hashable.HashKey(), HashPair{Key: key, Value: value})
	}
	return hash
}

func (e *Evaluator) evalIndex(n *ast.IndexExpr, env *Environment) Value {
	obj := e.Eval(n.Object, env)
	if IsError(obj) {
		return obj
	}
	idx := e.Eval(n.Index, env)
	if IsError(idx) {
		return idx
	}

	switch o := obj.(type) {
	case *ArrayVal:
		i, ok := idx.(IntVal)
		if !ok {
			return Errorf("array index must be an integer, got '%s'", idx.TypeName())
		}
		// Out of range is null, not an error.
		if int64(i) < 0 || int64(i) >= int64(len(o.Elements)) {
			return NullVal{}
		}
		return o.Elements[i]

	case *HashVal:
		hashable, ok := idx.(Hashable)
		if !ok {
			return Errorf("unusable as hash key: '%s'", idx.TypeName())
		}
		if pair, exists := o.Pairs[hashable.HashKey()]; exists {
			return pair.Value
		}
		return NullVal{}

	default:
		return Errorf("index operator not supported on '%s'", obj.TypeName())
	}
}
