package driver

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"lisp/interpreter-go/pkg/interpreter"
	"lisp/interpreter-go/pkg/lexer"
	"lisp/interpreter-go/pkg/parser"
	"lisp/interpreter-go/pkg/runtime"
)

// SourceExt is the extension picked up by LoadDir.
const SourceExt = ".lisp"

// BraceError reports a parenthesis without a partner.
type BraceError struct {
	Token lexer.Token
}

func (e *BraceError) Error() string {
	return fmt.Sprintf("unmatched brace %s at %s", e.Token.Text, e.Token.Pos())
}

// CheckBraces verifies that every LParen in tokens has a matching RParen.
func CheckBraces(tokens []lexer.Token) error {
	var stack []lexer.Token
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.TokenLParen:
			stack = append(stack, tok)
		case lexer.TokenRParen:
			if len(stack) == 0 {
				return &BraceError{Token: tok}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return &BraceError{Token: stack[len(stack)-1]}
	}
	return nil
}

// Session feeds source units to one interpreter, so bindings persist across calls.
type Session struct {
	interp *interpreter.Interpreter
	logger *slog.Logger
}

// NewSession wraps interp. A nil logger discards.
func NewSession(interp *interpreter.Interpreter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{interp: interp, logger: logger}
}

// Interpreter returns the wrapped interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Eval scans, checks, parses and evaluates one source unit. It returns the
// value of the last top-level form, or nil when the source holds none.
func (s *Session) Eval(source string) (runtime.Value, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	if err := CheckBraces(tokens); err != nil {
		return nil, err
	}
	forms := parser.Parse(tokens)
	s.logger.Debug("parsed", slog.Int("tokens", len(tokens)), slog.Int("forms", forms.Len()))

	var last runtime.Value
	for _, form := range forms.Values() {
		last, err = s.interp.Eval(form)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// LoadFile evaluates a whole file as one source unit.
func (s *Session) LoadFile(path string) (runtime.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.logger.Debug("load file", slog.String("path", path))
	val, err := s.Eval(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return val, nil
}

// LoadDir loads every source file under dir in path order.
func (s *Session) LoadDir(dir string) (int, error) {
	files, err := sourceFiles(dir)
	if err != nil {
		return 0, err
	}
	for idx, path := range files {
		if _, err := s.LoadFile(path); err != nil {
			return idx, err
		}
	}
	return len(files), nil
}

func sourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("traverse %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
