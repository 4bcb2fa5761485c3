package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitService reads change-sets from the git CLI
type GitService struct {
	workingDir string
}

// NewGitService creates a new instance of GitService
func NewGitService(workingDir string) *GitService {
	return &GitService{
		workingDir: workingDir,
	}
}

// runGit executes a git command in the service's working directory and
// returns its stdout
func (s *GitService) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.workingDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}
		return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
	}
	return string(out), nil
}

// ChangedFiles returns the paths changed since base, in the same
// slash-separated form CI passes through ALL_CHANGED_FILES. Committed changes
// on the branch, uncommitted edits and untracked files are all included;
// deletions are left out. An empty base compares against HEAD.
func (s *GitService) ChangedFiles(ctx context.Context, base string) ([]string, error) {
	diffArgs := []string{"diff", "--name-only", "--diff-filter=d", "--no-renames"}
	if base != "" {
		// Merge base, like a pull request diff
		diffArgs = append(diffArgs, base+"...HEAD")
	} else {
		diffArgs = append(diffArgs, "HEAD")
	}

	committed, err := s.runGit(ctx, diffArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to diff against %q: %w", base, err)
	}

	worktree := ""
	if base != "" {
		worktree, err = s.runGit(ctx, "diff", "--name-only", "--diff-filter=d", "--no-renames", "HEAD")
		if err != nil {
			return nil, fmt.Errorf("failed to list uncommitted changes: %w", err)
		}
	}

	untracked, err := s.runGit(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, out := range []string{committed, worktree, untracked} {
		for _, path := range strings.Split(out, "\n") {
			path = strings.TrimSpace(path)
			if path == "" || seen[path] {
				continue
			}
			seen[path] = true
			files = append(files, path)
		}
	}
	return files, nil
}

// IsRepository reports whether the working directory is inside a git work tree
func (s *GitService) IsRepository(ctx context.Context) bool {
	out, err := s.runGit(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}
