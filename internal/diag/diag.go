// Package diag provides diagnostic (error/warning) types for the front end.
package diag

import (
	"fmt"

	"monkey-lang/internal/span"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic represents a lexical or syntactic diagnostic message.
type Diagnostic struct {
	Code     string        `json:"code"` // stable error code, e.g. "E2001"
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Pos      span.Position `json:"pos"`
	Hint     string        `json:"hint,omitempty"`
}

// String returns a human-readable representation of the diagnostic.
func (d Diagnostic) String() string {
	msg := fmt.Sprintf("[%s] %s at %s: %s", d.Code, d.Severity, d.Pos, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Errorf creates an error diagnostic at the given position.
func Errorf(code string, pos span.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

// Messages flattens diagnostics to their string forms, preserving order.
func Messages(diags []Diagnostic) []string {
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.String()
	}
	return msgs
}
