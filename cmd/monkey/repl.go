package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"monkey-lang/internal/diag"
	"monkey-lang/internal/runtime"
)

const (
	colorBold  = "\x1b[1m"
	colorGray  = "\x1b[90m"
	colorGreen = "\x1b[32m"
)

// ---- repl command ----

func cmdRepl() {
	// History file at ~/.monkey_history.
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".monkey_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + ">> " + ansiReset,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s%smonkey REPL%s %s(type 'exit' or Ctrl+D to quit)%s\n\n",
		colorBold, ansiCyan, ansiReset, colorGray, ansiReset)

	ev := runtime.NewEvaluator(rl.Stdout())
	env := runtime.NewEnvironment()
	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt(colorGray + ".. " + ansiReset)
		} else {
			rl.SetPrompt(colorGreen + ">> " + ansiReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					// Cancel multi-line input
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, ansiReset)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		// Unbalanced braces keep the accumulator open for more lines.
		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		result, diags := ev.Run(source, "<repl>", env)
		if len(diags) > 0 {
			printDiagsColored(rl.Stderr(), diags)
			continue
		}
		if runtime.IsError(result) {
			fmt.Fprintf(rl.Stderr(), "%s%s%s\n", ansiRed, result.String(), ansiReset)
			continue
		}
		if result != nil {
			if _, isNull := result.(runtime.NullVal); !isNull {
				fmt.Fprintln(rl.Stdout(), result.String())
			}
		}
	}
}

// printDiagsColored prints diagnostics in red for REPL display.
func printDiagsColored(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s%s%s\n", ansiRed, d.String(), ansiReset)
	}
}
