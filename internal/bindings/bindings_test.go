//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/obinnaokechukwu/obsgo/internal/platform"
)

func TestLibrarySearchPaths(t *testing.T) {
	paths := LibrarySearchPaths()
	if len(paths) == 0 {
		t.Error("LibrarySearchPaths should return at least one path")
	}
}

func TestResolveExplicitFile(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "custom-libobs")
	if err := os.WriteFile(fake, []byte("not a library"), 0o644); err != nil {
		t.Fatalf("write fake library: %v", err)
	}

	got, err := resolveExplicit(fake)
	if err != nil {
		t.Fatalf("resolveExplicit: %v", err)
	}
	if got != fake {
		t.Errorf("got %q, want %q", got, fake)
	}
}

func TestResolveExplicitDirectory(t *testing.T) {
	dir := t.TempDir()
	name := platform.EngineLibraryNames()[len(platform.EngineLibraryNames())-1]
	fake := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(fake), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fake, []byte("not a library"), 0o644); err != nil {
		t.Fatalf("write fake library: %v", err)
	}

	got, err := resolveExplicit(dir)
	if err != nil {
		t.Fatalf("resolveExplicit: %v", err)
	}
	if got != fake {
		t.Errorf("got %q, want %q", got, fake)
	}
}

func TestResolveExplicitMissing(t *testing.T) {
	_, err := resolveExplicit(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrLibraryNotFound) {
		t.Errorf("expected ErrLibraryNotFound, got %v", err)
	}

	_, err = resolveExplicit(t.TempDir())
	if !errors.Is(err, ErrLibraryNotFound) {
		t.Errorf("empty directory: expected ErrLibraryNotFound, got %v", err)
	}
}

func TestFindLibraryHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "libobs-test")
	if err := os.WriteFile(fake, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLibraryPath, fake)

	got, err := FindLibrary()
	if err != nil {
		t.Fatalf("FindLibrary: %v", err)
	}
	if got != fake {
		t.Errorf("got %q, want %q", got, fake)
	}
}

// Integration test - only runs if libobs is installed.
func TestLoadLibOBS(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping libobs load test in short mode")
	}
	if _, err := FindLibrary(); err != nil {
		t.Skipf("libobs not installed: %v", err)
	}

	lib, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lib == 0 || !IsLoaded() {
		t.Error("expected a loaded library handle")
	}
	t.Logf("libobs loaded from %s", Path())
}
