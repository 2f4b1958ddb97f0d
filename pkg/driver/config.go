package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project file searched for by FindConfig.
const ConfigFileName = "lisp.yml"

// DefaultPrompt is used when the config omits one.
const DefaultPrompt = ">>> "

// ErrConfigNotFound is returned by FindConfig when no lisp.yml exists above the start directory.
var ErrConfigNotFound = errors.New("config: lisp.yml not found")

// Config represents the parsed contents of lisp.yml.
type Config struct {
	Path     string
	Name     string
	Prompt   string
	History  string
	Trace    bool
	Preload  []string
	Preludes map[string]*PreludeSpec
}

// PreludeSpec describes where a prelude directory comes from: a local path or
// a git repository pinned by rev, tag, or branch.
type PreludeSpec struct {
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// IsGit reports whether the prelude is fetched from a repository.
func (p *PreludeSpec) IsGit() bool {
	return p != nil && p.Git != ""
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is used when no lisp.yml is present.
func DefaultConfig() *Config {
	return &Config{
		Name:     "lisp",
		Prompt:   DefaultPrompt,
		Preludes: map[string]*PreludeSpec{},
	}
}

// Dir returns the directory holding the config file, or "" for the default config.
func (c *Config) Dir() string {
	if c == nil || c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// PreludeNames returns the prelude names in sorted order.
func (c *Config) PreludeNames() []string {
	names := make([]string, 0, len(c.Preludes))
	for name := range c.Preludes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfig parses lisp.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg, err := raw.toConfig(absPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig walks upward from start looking for lisp.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for idx, path := range c.Preload {
		if path == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("preload[%d] must be a non-empty path", idx))
		}
	}
	for _, name := range c.PreludeNames() {
		for _, issue := range c.Preludes[name].validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("preludes.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (p *PreludeSpec) validate() []string {
	var errs []string
	if p == nil {
		return []string{"must specify path or git"}
	}
	if p.Path != "" && p.Git != "" {
		errs = append(errs, "cannot specify both path and git")
	}
	if p.Path == "" && p.Git == "" {
		errs = append(errs, "must specify path or git")
	}
	pins := 0
	for _, pin := range []string{p.Rev, p.Tag, p.Branch} {
		if pin != "" {
			pins++
		}
	}
	if p.Git != "" && pins == 0 {
		errs = append(errs, "git preludes require rev, tag, or branch")
	}
	if pins > 1 {
		errs = append(errs, "only one of rev, tag, or branch may be set")
	}
	if p.Path != "" && pins > 0 {
		errs = append(errs, "path preludes cannot be pinned")
	}
	return errs
}

type configFile struct {
	Name     string     `yaml:"name"`
	Prompt   *string    `yaml:"prompt"`
	History  string     `yaml:"history"`
	Trace    bool       `yaml:"trace"`
	Preload  stringList `yaml:"preload"`
	Preludes preludeMap `yaml:"preludes"`
}

type preludeMap map[string]*PreludeSpec

type stringList []string

func (cf configFile) toConfig(path string) (*Config, error) {
	dir := filepath.Dir(path)
	cfg := &Config{
		Path:     path,
		Name:     strings.TrimSpace(cf.Name),
		Prompt:   DefaultPrompt,
		Trace:    cf.Trace,
		Preludes: make(map[string]*PreludeSpec, len(cf.Preludes)),
	}
	if cf.Prompt != nil {
		cfg.Prompt = *cf.Prompt
	}
	if history := strings.TrimSpace(cf.History); history != "" {
		expanded, err := expandHome(history)
		if err != nil {
			return nil, fmt.Errorf("config: history: %w", err)
		}
		cfg.History = resolveRelative(dir, expanded)
	}
	for _, item := range cf.Preload {
		cfg.Preload = append(cfg.Preload, resolveRelative(dir, item))
	}
	for name, spec := range cf.Preludes {
		clone := *spec
		if clone.Path != "" {
			clone.Path = resolveRelative(dir, clone.Path)
		}
		cfg.Preludes[name] = &clone
	}
	return cfg, nil
}

func resolveRelative(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("config: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (pm *preludeMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		*pm = make(preludeMap)
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: preludes must be a mapping")
	}
	result := make(preludeMap, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("config: prelude names must be non-empty")
		}
		spec, err := decodePrelude(value.Content[i+1])
		if err != nil {
			return fmt.Errorf("config: prelude %q: %w", key, err)
		}
		result[key] = spec
	}
	*pm = result
	return nil
}

// decodePrelude accepts a bare path string or a mapping.
func decodePrelude(value *yaml.Node) (*PreludeSpec, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		return &PreludeSpec{Path: strings.TrimSpace(value.Value)}, nil
	case yaml.MappingNode:
		var raw struct {
			Path   string `yaml:"path"`
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
		}
		if err := value.Decode(&raw); err != nil {
			return nil, err
		}
		return &PreludeSpec{
			Path:   strings.TrimSpace(raw.Path),
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
		}, nil
	case yaml.AliasNode:
		return decodePrelude(value.Alias)
	default:
		return nil, fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}
