package main

import (
	"encoding/json"
	"fmt"
	"os"

	"monkey-lang/internal/diag"
	"monkey-lang/internal/token"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiReset  = "\x1b[0m"
)

func printJSON(v interface{}) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot encode JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func printTokensText(tokens []token.Token, diags []diag.Diagnostic) {
	for _, tok := range tokens {
		fmt.Printf("%-12s %-16q %s\n", tok.Kind, tok.Lexeme, tok.Pos)
	}
	printDiagsText(diags)
}

func printTokensJSON(tokens []token.Token, diags []diag.Diagnostic) {
	list := make([]map[string]interface{}, 0, len(tokens))
	for _, tok := range tokens {
		list = append(list, map[string]interface{}{
			"kind":   tok.Kind.String(),
			"lexeme": tok.Lexeme,
			"line":   tok.Pos.Line,
			"column": tok.Pos.Column,
		})
	}
	printJSON(map[string]interface{}{
		"tokens":      list,
		"diagnostics": diagsToSlice(diags),
	})
}

func printDiagsText(diags []diag.Diagnostic) {
	for _, d := range diags {
		color := ansiRed
		if d.Severity == diag.Warning {
			color = ansiYellow
		}
		fmt.Fprintf(os.Stderr, "%s%s%s\n", color, d.String(), ansiReset)
		if d.Hint != "" {
			fmt.Fprintf(os.Stderr, "  %shint: %s%s\n", ansiCyan, d.Hint, ansiReset)
		}
	}
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(diags))
	for _, d := range diags {
		entry := map[string]interface{}{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     d.Pos.Line,
			"column":   d.Pos.Column,
		}
		if d.Hint != "" {
			entry["hint"] = d.Hint
		}
		list = append(list, entry)
	}
	return list
}
