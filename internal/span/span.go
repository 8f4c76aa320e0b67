// Package span provides the source position type shared by the
// lexer, parser and diagnostics.
package span

import "fmt"

// Position identifies a location in source text.
type Position struct {
	Offset int `json:"offset"` // byte offset from beginning of source
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position has never been set.
func (p Position) IsZero() bool {
	return p.Line == 0
}
