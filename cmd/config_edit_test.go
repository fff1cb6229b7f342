package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveConfigEditPath(t *testing.T) {
	path, err := resolveConfigEditPath("./override.yaml", "/home/user/.kousu.yaml")
	if err != nil {
		t.Fatalf("resolveConfigEditPath() error = %v", err)
	}
	if path != "./override.yaml" {
		t.Fatalf("path = %q, want flag override", path)
	}

	path, err = resolveConfigEditPath("", "/home/user/.kousu.yaml")
	if err != nil {
		t.Fatalf("resolveConfigEditPath() error = %v", err)
	}
	if path != "/home/user/.kousu.yaml" {
		t.Fatalf("path = %q, want active config", path)
	}

	path, err = resolveConfigEditPath("", "")
	if err != nil {
		t.Fatalf("resolveConfigEditPath() error = %v", err)
	}
	if !strings.HasSuffix(path, ".kousu.yaml") {
		t.Fatalf("path = %q, want home default", path)
	}
}

func TestEnsureConfigFileWithTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "conf", ".kousu.yaml")

	created, err := ensureConfigFileWithTemplate(path)
	if err != nil {
		t.Fatalf("ensureConfigFileWithTemplate() error = %v", err)
	}
	if !created {
		t.Fatal("created = false, want true for missing file")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read created config: %v", err)
	}
	if !strings.Contains(string(content), "portal:") {
		t.Fatalf("template content = %q", content)
	}

	created, err = ensureConfigFileWithTemplate(path)
	if err != nil {
		t.Fatalf("ensureConfigFileWithTemplate() second call error = %v", err)
	}
	if created {
		t.Fatal("created = true, want false for existing file")
	}
}

func TestResolveEditorValue(t *testing.T) {
	t.Parallel()

	if got := resolveEditorValue("code --wait", "vim"); got != "code --wait" {
		t.Fatalf("resolveEditorValue() = %q, want VISUAL", got)
	}
	if got := resolveEditorValue("", "vim"); got != "vim" {
		t.Fatalf("resolveEditorValue() = %q, want EDITOR", got)
	}
	if got := resolveEditorValue(" ", ""); got != "vi" {
		t.Fatalf("resolveEditorValue() = %q, want vi fallback", got)
	}
}

func TestBuildEditorCommand(t *testing.T) {
	t.Parallel()

	cmd, err := buildEditorCommand("code --wait", "/tmp/.kousu.yaml")
	if err != nil {
		t.Fatalf("buildEditorCommand() error = %v", err)
	}
	if len(cmd.Args) != 3 || cmd.Args[1] != "--wait" || cmd.Args[2] != "/tmp/.kousu.yaml" {
		t.Fatalf("args = %v", cmd.Args)
	}

	if _, err := buildEditorCommand("  ", "/tmp/.kousu.yaml"); err == nil {
		t.Fatal("buildEditorCommand() expected error for empty editor")
	}
}
