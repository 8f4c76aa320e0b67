package ast

import (
	"monkey-lang/internal/span"
	"monkey-lang/internal/token"
)

// NodeToMap converts an AST node to a map suitable for JSON serialization.
// This produces a tagged-union structure: every node has a "kind" field.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return m("Program", n.Pos, "stmts", stmtSlice(n.Stmts))

	// ---- Statements ----
	case *LetStmt:
		return m("LetStmt", n.Pos,
			"name", n.Name.Name,
			"value", NodeToMap(n.Value))
	case *ReturnStmt:
		result := m("ReturnStmt", n.Pos)
		if n.Value != nil {
			result["value"] = NodeToMap(n.Value)
		}
		return result
	case *ExprStmt:
		return m("ExprStmt", n.Pos, "expr", NodeToMap(n.Expr))
	case *BlockStmt:
		return m("BlockStmt", n.Pos, "stmts", stmtSlice(n.Stmts))

	// ---- Expressions ----
	case *IdentExpr:
		return m("IdentExpr", n.Pos, "name", n.Name)
	case *IntLiteral:
		return m("IntLiteral", n.Pos, "value", n.Value)
	case *BoolLiteral:
		return m("BoolLiteral", n.Pos, "value", n.Value)
	case *StringLiteral:
		return m("StringLiteral", n.Pos, "value", n.Value)
	case *PrefixExpr:
		return m("PrefixExpr", n.Pos,
			"op", opStr(n.Op),
			"operand", NodeToMap(n.Operand))
	case *InfixExpr:
		return m("InfixExpr", n.Pos,
			"op", opStr(n.Op),
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *IfExpr:
		result := m("IfExpr", n.Pos,
			"condition", NodeToMap(n.Condition),
			"consequence", NodeToMap(n.Consequence))
		if n.Alternative != nil {
			result["alternative"] = NodeToMap(n.Alternative)
		}
		return result
	case *FuncLiteral:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		return m("FuncLiteral", n.Pos, "params", params, "body", NodeToMap(n.Body))
	case *CallExpr:
		return m("CallExpr", n.Pos,
			"callee", NodeToMap(n.Callee),
			"args", exprSlice(n.Args))
	case *ArrayLiteral:
		return m("ArrayLiteral", n.Pos, "elements", exprSlice(n.Elements))
	case *HashLiteral:
		pairs := make([]interface{}, len(n.Keys))
		for i := range n.Keys {
			pairs[i] = map[string]interface{}{
				"key":   NodeToMap(n.Keys[i]),
				"value": NodeToMap(n.Values[i]),
			}
		}
		return m("HashLiteral", n.Pos, "pairs", pairs)
	case *IndexExpr:
		return m("IndexExpr", n.Pos,
			"object", NodeToMap(n.Object),
			"index", NodeToMap(n.Index))

	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// ---- helpers ----

// m builds a map with kind, pos, and extra key-value pairs.
func m(kind string, pos span.Position, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"pos":  posToMap(pos),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func posToMap(pos span.Position) map[string]interface{} {
	return map[string]interface{}{
		"offset": pos.Offset,
		"line":   pos.Line,
		"column": pos.Column,
	}
}

func stmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = NodeToMap(s)
	}
	return result
}

func exprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e)
	}
	return result
}

func opStr(kind token.Kind) string {
	return kind.String()
}
