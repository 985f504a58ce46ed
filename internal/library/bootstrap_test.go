package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ssmt/internal/library"
	"ssmt/internal/testsupport"
)

type staticFinder struct {
	path string
	ok   bool
}

func (f staticFinder) FindSource() (string, bool) { return f.path, f.ok }

func TestEnsureGlobalCopiesBundledLibrary(t *testing.T) {
	src := t.TempDir()
	testsupport.WriteText(t, filepath.Join(src, "Genshin", "Config.json"), `{"basic":{}}`)
	testsupport.WriteText(t, filepath.Join(src, "Genshin", "Mods", "readme.txt"), "mods")
	target := filepath.Join(t.TempDir(), "SSMT4GlobalConfigs", "Games")

	b := library.NewBootstrapper(target, staticFinder{path: src, ok: true}, nil)
	result, err := b.EnsureGlobal(context.Background())
	if err != nil {
		t.Fatalf("EnsureGlobal: %v", err)
	}
	if !result.Created || result.Copied != 2 || result.Source != src {
		t.Fatalf("unexpected result %+v", result)
	}
	if got := testsupport.ReadText(t, filepath.Join(target, "Genshin", "Mods", "readme.txt")); got != "mods" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestEnsureGlobalIsIdempotent(t *testing.T) {
	src := t.TempDir()
	testsupport.WriteText(t, filepath.Join(src, "Genshin", "Config.json"), "bundled")
	target := filepath.Join(t.TempDir(), "Games")
	b := library.NewBootstrapper(target, staticFinder{path: src, ok: true}, nil)

	if _, err := b.EnsureGlobal(context.Background()); err != nil {
		t.Fatalf("EnsureGlobal: %v", err)
	}
	userFile := filepath.Join(target, "Genshin", "Config.json")
	testsupport.WriteText(t, userFile, "user edited")
	testsupport.WriteText(t, filepath.Join(src, "Honkai", "Config.json"), "new bundled game")

	result, err := b.EnsureGlobal(context.Background())
	if err != nil {
		t.Fatalf("EnsureGlobal: %v", err)
	}
	if result.Created || result.Copied != 0 {
		t.Fatalf("second call should not re-sync, got %+v", result)
	}
	if got := testsupport.ReadText(t, userFile); got != "user edited" {
		t.Fatalf("user file overwritten: %q", got)
	}
	if names := testsupport.ListNames(t, target); len(names) != 1 {
		t.Fatalf("expected no new games after bootstrap, got %v", names)
	}
}

func TestEnsureGlobalWithoutSourceCreatesEmptyTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "Games")
	result, err := library.NewBootstrapper(target, staticFinder{}, nil).EnsureGlobal(context.Background())
	if err != nil {
		t.Fatalf("EnsureGlobal: %v", err)
	}
	if !result.Created || result.Source != "" {
		t.Fatalf("unexpected result %+v", result)
	}
	if names := testsupport.ListNames(t, target); len(names) != 0 {
		t.Fatalf("expected empty target, got %v", names)
	}
}

func TestEnsureGlobalReportsPartialCopy(t *testing.T) {
	src := t.TempDir()
	testsupport.WriteText(t, filepath.Join(src, "Genshin", "Config.json"), "bundled")
	if err := os.Symlink(filepath.Join(src, "gone.png"), filepath.Join(src, "Genshin", "Icon.png")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	target := filepath.Join(t.TempDir(), "Games")

	result, err := library.NewBootstrapper(target, staticFinder{path: src, ok: true}, nil).EnsureGlobal(context.Background())
	if err != nil {
		t.Fatalf("partial copy should not fail bootstrap: %v", err)
	}
	if result.Copied != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Errors[0].Path != filepath.Join(src, "Genshin", "Icon.png") {
		t.Fatalf("unexpected failed path %q", result.Errors[0].Path)
	}
}
