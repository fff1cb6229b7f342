package syncrepo

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls   [][]string
	diffErr error
	fail    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if args[0] == "diff" {
		return "", f.diffErr
	}
	if err, ok := f.fail[args[0]]; ok {
		return "", err
	}
	return "", nil
}

func TestSyncCommitsAndPushes(t *testing.T) {
	t.Parallel()

	git := &fakeRunner{diffErr: errors.New("exit status 1")}
	committed, err := syncWith(context.Background(), git, Options{
		RepoDir: "/repo",
		Files:   []string{"data/工数データ.csv", "data/見積データ.csv"},
	})
	if err != nil {
		t.Fatalf("syncWith() error = %v", err)
	}
	if !committed {
		t.Fatal("syncWith() committed = false, want true")
	}

	want := [][]string{
		{"add", "--", "data/工数データ.csv", "data/見積データ.csv"},
		{"diff", "--cached", "--quiet"},
		{"commit", "-m", "自動更新"},
		{"push", "origin", "master"},
	}
	if len(git.calls) != len(want) {
		t.Fatalf("git calls = %v", git.calls)
	}
	for i := range want {
		if strings.Join(git.calls[i], " ") != strings.Join(want[i], " ") {
			t.Errorf("call %d = %v, want %v", i, git.calls[i], want[i])
		}
	}
}

func TestSyncSkipsCommitOnCleanTree(t *testing.T) {
	t.Parallel()

	git := &fakeRunner{diffErr: nil}
	committed, err := syncWith(context.Background(), git, Options{
		Files: []string{"data/工数データ.csv"},
	})
	if err != nil {
		t.Fatalf("syncWith() error = %v", err)
	}
	if committed {
		t.Fatal("syncWith() committed = true on clean tree")
	}
	for _, call := range git.calls {
		if call[0] == "commit" || call[0] == "push" {
			t.Fatalf("unexpected git %s on clean tree", call[0])
		}
	}
}

func TestSyncRequiresFiles(t *testing.T) {
	t.Parallel()

	if _, err := syncWith(context.Background(), &fakeRunner{}, Options{}); err == nil {
		t.Fatal("syncWith() expected error for empty file list")
	}
}

func TestSyncPropagatesPushError(t *testing.T) {
	t.Parallel()

	pushErr := errors.New("remote rejected")
	git := &fakeRunner{
		diffErr: errors.New("exit status 1"),
		fail:    map[string]error{"push": pushErr},
	}
	committed, err := syncWith(context.Background(), git, Options{Files: []string{"a.csv"}})
	if !errors.Is(err, pushErr) {
		t.Fatalf("syncWith() error = %v, want %v", err, pushErr)
	}
	if !committed {
		t.Fatal("syncWith() committed = false, want true when push fails after commit")
	}
}
