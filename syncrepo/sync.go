// Package syncrepo commits and pushes the durable data CSVs to the
// project's git remote after an ingest run.
package syncrepo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Options configure one sync run. Files are repo-relative paths to stage.
type Options struct {
	RepoDir string
	Files   []string
	Remote  string
	Branch  string
	Message string
}

// Runner executes git commands; swapped out in tests.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type gitRunner struct{}

func (gitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(out.String()))
	}
	return out.String(), nil
}

// Sync stages the data files, commits them, and pushes to the remote.
// A clean tree is not an error: the commit is skipped and Sync reports
// committed=false.
func Sync(ctx context.Context, options Options) (bool, error) {
	return syncWith(ctx, gitRunner{}, options)
}

func syncWith(ctx context.Context, git Runner, options Options) (bool, error) {
	if len(options.Files) == 0 {
		return false, fmt.Errorf("no files to sync")
	}
	remote := options.Remote
	if remote == "" {
		remote = "origin"
	}
	branch := options.Branch
	if branch == "" {
		branch = "master"
	}
	message := options.Message
	if message == "" {
		message = "自動更新"
	}

	addArgs := append([]string{"add", "--"}, options.Files...)
	if _, err := git.Run(ctx, options.RepoDir, addArgs...); err != nil {
		return false, err
	}

	// Empty diff means the export produced no changes; skip the commit.
	if _, err := git.Run(ctx, options.RepoDir, "diff", "--cached", "--quiet"); err == nil {
		return false, nil
	}

	if _, err := git.Run(ctx, options.RepoDir, "commit", "-m", message); err != nil {
		return false, err
	}
	if _, err := git.Run(ctx, options.RepoDir, "push", remote, branch); err != nil {
		return true, err
	}
	return true, nil
}
