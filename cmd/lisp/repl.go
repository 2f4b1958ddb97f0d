package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"lisp/interpreter-go/pkg/driver"
	"lisp/interpreter-go/pkg/runtime"
)

// prompter is the part of liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func runREPL() int {
	cfg, err := loadConfigFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	session, err := bootstrap(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	code := repl(line, session, cfg.Prompt, os.Stdout, os.Stderr, line.AppendHistory)

	if cfg.History != "" {
		if f, err := os.Create(cfg.History); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		} else {
			fmt.Fprintf(os.Stderr, "warning: unable to save history: %v\n", err)
		}
	}
	return code
}

// repl reads lines until EOF or :q. Each line is one source unit; :l <path>
// loads a file into the same session.
func repl(in prompter, session *driver.Session, prompt string, out, errOut io.Writer, record func(string)) int {
	for {
		input, err := in.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return 0
			}
			fmt.Fprintf(errOut, "error reading input: %v\n", err)
			return 1
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if record != nil {
			record(input)
		}

		var val runtime.Value
		switch {
		case input == ":q":
			return 0
		case input == ":l" || strings.HasPrefix(input, ":l "):
			path := strings.TrimSpace(strings.TrimPrefix(input, ":l"))
			if path == "" {
				fmt.Fprintln(errOut, "error: :l requires a path")
				continue
			}
			val, err = session.LoadFile(path)
		default:
			val, err = session.Eval(input)
		}
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			continue
		}
		if val != nil {
			fmt.Fprintln(out, runtime.Format(val))
		}
	}
}
