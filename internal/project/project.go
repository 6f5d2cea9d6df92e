// Package project detects project identity: the project root, a
// human-readable name, and best-effort git state. All git probes degrade
// to empty values outside a repository.
package project

import (
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Info contains detected project metadata.
type Info struct {
	// Name is derived from the origin remote URL when available, else the
	// base name of the root directory.
	Name string
	// Root is the absolute project root: the git worktree root when in a
	// repository, else the directory itself.
	Root string
	// Git reports whether the directory is inside a git repository.
	Git bool
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Info)
)

// FromDirectory detects project information for a directory. Results are
// cached per absolute path to avoid repeated git calls.
func FromDirectory(directory string) (*Info, error) {
	directory, err := filepath.Abs(directory)
	if err != nil {
		return nil, err
	}

	cacheMu.RLock()
	if info, ok := cache[directory]; ok {
		cacheMu.RUnlock()
		return info, nil
	}
	cacheMu.RUnlock()

	info := &Info{Root: directory}

	if top := gitOutput(directory, "rev-parse", "--show-toplevel"); top != "" {
		info.Root = top
		info.Git = true
	}

	info.Name = nameFromRemote(gitOutput(directory, "remote", "get-url", "origin"))
	if info.Name == "" {
		info.Name = filepath.Base(info.Root)
	}

	cacheMu.Lock()
	cache[directory] = info
	cacheMu.Unlock()
	return info, nil
}

// Branch returns the current git branch, or "" outside a repository or in
// detached HEAD state.
func Branch(directory string) string {
	branch := gitOutput(directory, "rev-parse", "--abbrev-ref", "HEAD")
	if branch == "HEAD" {
		return ""
	}
	return branch
}

// ShortCommit returns the abbreviated HEAD commit hash, or "" when
// unavailable.
func ShortCommit(directory string) string {
	return gitOutput(directory, "rev-parse", "--short", "HEAD")
}

// ClearCache clears the project cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = make(map[string]*Info)
}

// nameFromRemote extracts a project name from a git remote URL.
// Handles both SSH (git@host:org/repo.git) and HTTPS forms.
func nameFromRemote(url string) string {
	if url == "" {
		return ""
	}
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")
	if idx := strings.LastIndexAny(url, "/:"); idx >= 0 {
		url = url[idx+1:]
	}
	return url
}

func gitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
