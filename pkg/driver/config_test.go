package driver

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
name: scratch
prompt: "lisp> "
history: ~/.lisp_history
trace: true
preload:
  - init.lisp
  - /abs/extra.lisp
preludes:
  core: lib/core
  math:
    git: https://example.com/math.git
    tag: v1.0.0
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "scratch" || cfg.Prompt != "lisp> " || !cfg.Trace {
		t.Fatalf("unexpected scalars: %#v", cfg)
	}
	if cfg.History != filepath.Join(home, ".lisp_history") {
		t.Fatalf("history not expanded: %q", cfg.History)
	}
	wantPreload := []string{filepath.Join(dir, "init.lisp"), "/abs/extra.lisp"}
	if !reflect.DeepEqual(cfg.Preload, wantPreload) {
		t.Fatalf("preload = %#v, want %#v", cfg.Preload, wantPreload)
	}
	if got := cfg.PreludeNames(); !reflect.DeepEqual(got, []string{"core", "math"}) {
		t.Fatalf("prelude names = %#v", got)
	}
	if core := cfg.Preludes["core"]; core.Path != filepath.Join(dir, "lib", "core") || core.IsGit() {
		t.Fatalf("core prelude = %#v", core)
	}
	if math := cfg.Preludes["math"]; !math.IsGit() || math.Tag != "v1.0.0" {
		t.Fatalf("math prelude = %#v", math)
	}
	if cfg.Dir() != dir {
		t.Fatalf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadConfigDefaultsAndScalarPreload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "name: minimal\npreload: boot.lisp\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Prompt != DefaultPrompt {
		t.Fatalf("expected default prompt, got %q", cfg.Prompt)
	}
	if cfg.History != "" || cfg.Trace {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if !reflect.DeepEqual(cfg.Preload, []string{filepath.Join(dir, "boot.lisp")}) {
		t.Fatalf("preload = %#v", cfg.Preload)
	}
	if len(cfg.Preludes) != 0 {
		t.Fatalf("expected no preludes, got %#v", cfg.Preludes)
	}
}

func TestLoadConfigEmptyPromptIsKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "name: quiet\nprompt: \"\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Prompt != "" {
		t.Fatalf("expected explicit empty prompt, got %q", cfg.Prompt)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		issues   []string
	}{
		{
			name:     "MissingName",
			contents: "prompt: x\n",
			issues:   []string{"name must be provided"},
		},
		{
			name: "GitWithoutPin",
			contents: `
name: app
preludes:
  util:
    git: https://example.com/util.git
`,
			issues: []string{"preludes.util: git preludes require rev, tag, or branch"},
		},
		{
			name: "PathAndGit",
			contents: `
name: app
preludes:
  util:
    path: ./util
    git: https://example.com/util.git
    rev: abc
`,
			issues: []string{
				"preludes.util: cannot specify both path and git",
				"preludes.util: path preludes cannot be pinned",
			},
		},
		{
			name: "TwoPins",
			contents: `
name: app
preludes:
  util:
    git: https://example.com/util.git
    tag: v1
    branch: main
`,
			issues: []string{"preludes.util: only one of rev, tag, or branch may be set"},
		},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		writeFile(t, path, tc.contents)
		_, err := LoadConfig(path)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if !reflect.DeepEqual(verr.Issues, tc.issues) {
			t.Fatalf("%s: issues = %#v, want %#v", tc.name, verr.Issues, tc.issues)
		}
		if !strings.HasPrefix(verr.Error(), "config validation failed:") {
			t.Fatalf("%s: unexpected message %q", tc.name, verr.Error())
		}
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "name: app\ncolour: blue\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestFindConfigSearchesUpward(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ConfigFileName)
	writeFile(t, path, "name: app\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if got != path {
		t.Fatalf("FindConfig = %q, want %q", got, path)
	}

	file := filepath.Join(nested, "main.lisp")
	writeFile(t, file, "1")
	if got, err := FindConfig(file); err != nil || got != path {
		t.Fatalf("FindConfig(file) = %q, %v", got, err)
	}
}

func TestFindConfigMissing(t *testing.T) {
	_, err := FindConfig(t.TempDir())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Prompt != DefaultPrompt || cfg.Dir() != "" || len(cfg.PreludeNames()) != 0 {
		t.Fatalf("unexpected default config %#v", cfg)
	}
}
