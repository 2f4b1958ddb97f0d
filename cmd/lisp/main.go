package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lisp/interpreter-go/pkg/driver"
	"lisp/interpreter-go/pkg/interpreter"
	"lisp/interpreter-go/pkg/runtime"
)

const cliToolVersion = "lisp-cli 0.0.0-dev"

const traceEnv = "LISP_TRACE"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runREPL()
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "fetch":
		return runFetch(args[1:])
	default:
		return runFile(args)
	}
}

func runFile(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}
	path := args[0]
	cfg, err := loadConfigFrom(filepath.Dir(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	session, err := bootstrap(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	val, err := session.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if val != nil {
		fmt.Fprintln(os.Stdout, runtime.Format(val))
	}
	return 0
}

func runFetch(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return 1
	}
	path, err := driver.FindConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "lisp fetch requires a %s: %v\n", driver.ConfigFileName, err)
		return 1
	}
	cfg, err := driver.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	home, err := driver.ResolveHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	fetcher := driver.NewFetcher(home)
	fetched := 0
	for _, name := range cfg.PreludeNames() {
		spec := cfg.Preludes[name]
		if !spec.IsGit() {
			continue
		}
		dir, commit, err := fetcher.Fetch(name, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "fetched %s %s -> %s\n", name, commit, dir)
		fetched++
	}
	if fetched == 0 {
		fmt.Fprintln(os.Stdout, "no git preludes to fetch")
	}
	return 0
}

// loadConfigFrom finds lisp.yml above start, falling back to the defaults.
func loadConfigFrom(start string) (*driver.Config, error) {
	path, err := driver.FindConfig(start)
	if err != nil {
		if errors.Is(err, driver.ErrConfigNotFound) {
			return driver.DefaultConfig(), nil
		}
		return nil, err
	}
	return driver.LoadConfig(path)
}

// bootstrap builds a session and loads the configured preludes and preload files.
func bootstrap(cfg *driver.Config) (*driver.Session, error) {
	logger := newLogger(cfg)
	interp := interpreter.New(
		interpreter.WithOutput(os.Stdout),
		interpreter.WithLogger(logger),
	)
	session := driver.NewSession(interp, logger)

	if len(cfg.Preludes) > 0 {
		home, err := driver.ResolveHome()
		if err != nil {
			return nil, err
		}
		dirs, err := driver.ResolvePreludes(cfg, home)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve preludes: %w", err)
		}
		for _, dir := range dirs {
			n, err := session.LoadDir(dir)
			if err != nil {
				return nil, fmt.Errorf("failed to load prelude %s: %w", dir, err)
			}
			logger.Debug("prelude loaded", slog.String("dir", dir), slog.Int("files", n))
		}
	}
	for _, path := range cfg.Preload {
		if _, err := session.LoadFile(path); err != nil {
			return nil, fmt.Errorf("failed to preload: %w", err)
		}
	}
	return session, nil
}

func newLogger(cfg *driver.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Trace || traceEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func traceEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(traceEnv))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lisp               start the interactive loop")
	fmt.Fprintln(os.Stderr, "  lisp <file.lisp>   evaluate a file and print its last value")
	fmt.Fprintln(os.Stderr, "  lisp fetch         fetch git preludes listed in lisp.yml")
	fmt.Fprintln(os.Stderr, "  lisp --version")
}
