package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// HomeEnv overrides the cache root used for fetched preludes.
const HomeEnv = "LISP_HOME"

// ErrPreludeNotFetched is returned when a git prelude has no local checkout yet.
var ErrPreludeNotFetched = errors.New("prelude not fetched")

// ResolveHome returns $LISP_HOME, or ~/.lisp when unset.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve %s %q: %w", HomeEnv, home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".lisp"), nil
}

// Fetcher maintains git prelude checkouts under <cacheDir>/preludes/<name>/<pin>.
type Fetcher struct {
	cacheDir string
}

func NewFetcher(cacheDir string) *Fetcher {
	if cacheDir == "" {
		return nil
	}
	return &Fetcher{cacheDir: cacheDir}
}

// CheckoutDir returns where the prelude is checked out, whether or not it exists yet.
func (f *Fetcher) CheckoutDir(name string, spec *PreludeSpec) (string, error) {
	if f == nil {
		return "", errors.New("git fetcher unavailable")
	}
	_, descriptor, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", err
	}
	return filepath.Join(f.cacheDir, "preludes", sanitizePathSegment(name), sanitizePathSegment(descriptor)), nil
}

// Fetch clones the prelude repository and checks out the pinned revision. A
// rev or tag that is already checked out is reused; branches are refreshed.
// It returns the checkout directory and the commit hash.
func (f *Fetcher) Fetch(name string, spec *PreludeSpec) (string, string, error) {
	if f == nil {
		return "", "", errors.New("git fetcher unavailable")
	}
	if spec == nil || strings.TrimSpace(spec.Git) == "" {
		return "", "", fmt.Errorf("prelude %q: git URL required", name)
	}
	targetDir, err := f.CheckoutDir(name, spec)
	if err != nil {
		return "", "", fmt.Errorf("prelude %q: %w", name, err)
	}
	if spec.Branch == "" {
		if commit, err := checkoutCommit(targetDir); err == nil {
			return targetDir, commit, nil
		}
	}
	commit, err := cloneAt(targetDir, strings.TrimSpace(spec.Git), spec)
	if err != nil {
		return "", "", fmt.Errorf("prelude %q: %w", name, err)
	}
	return targetDir, commit, nil
}

// Resolve returns an existing checkout without touching the network.
func (f *Fetcher) Resolve(name string, spec *PreludeSpec) (string, error) {
	targetDir, err := f.CheckoutDir(name, spec)
	if err != nil {
		return "", fmt.Errorf("prelude %q: %w", name, err)
	}
	if _, err := checkoutCommit(targetDir); err != nil {
		return "", fmt.Errorf("prelude %q: %w (run `lisp fetch`)", name, ErrPreludeNotFetched)
	}
	return targetDir, nil
}

// ResolvePreludes returns the directory of every prelude in cfg, ordered by name.
func ResolvePreludes(cfg *Config, cacheDir string) ([]string, error) {
	if cfg == nil || len(cfg.Preludes) == 0 {
		return nil, nil
	}
	fetcher := NewFetcher(cacheDir)
	dirs := make([]string, 0, len(cfg.Preludes))
	for _, name := range cfg.PreludeNames() {
		spec := cfg.Preludes[name]
		if spec.IsGit() {
			dir, err := fetcher.Resolve(name, spec)
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, dir)
			continue
		}
		info, err := os.Stat(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("prelude %q: %w", name, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("prelude %q: %s is not a directory", name, spec.Path)
		}
		dirs = append(dirs, spec.Path)
	}
	return dirs, nil
}

func checkoutCommit(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

func cloneAt(targetDir, url string, spec *PreludeSpec) (string, error) {
	baseDir := filepath.Dir(targetDir)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", err
	}
	revision, _, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	opts := &git.CloneOptions{URL: url}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}
	repo, err := git.PlainClone(tmpDir, false, opts)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git clone %s: %w", url, err)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return hash.String(), nil
}

func gitRevisionFromSpec(spec *PreludeSpec) (plumbing.Revision, string, error) {
	if spec == nil {
		return "", "", fmt.Errorf("git preludes require rev, tag, or branch")
	}
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("git preludes require rev, tag, or branch")
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
