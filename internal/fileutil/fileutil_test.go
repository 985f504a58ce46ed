package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyFileMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileMode(src, dst, 0o755); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	// umask may clear some bits.
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("expected executable bits, got %o", info.Mode().Perm())
	}
}

func TestCopyFileVerifiedReportsBytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := CopyFileVerified(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(content)) {
		t.Fatalf("expected %d bytes, got %d", len(content), n)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := CopyFileVerified(filepath.Join(dir, "nonexistent"), filepath.Join(dir, "dst.bin")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyTreeSkipsExistingFiles(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "target")

	mustWrite(t, filepath.Join(src, "Genshin", "Config.json"), "bundled")
	mustWrite(t, filepath.Join(src, "Genshin", "Icon.png"), "icon")
	mustWrite(t, filepath.Join(src, "Honkai", "Config.json"), "bundled")
	mustWrite(t, filepath.Join(dst, "Genshin", "Config.json"), "user edited")

	result, err := CopyTree(src, dst)
	if err != nil {
		t.Fatalf("CopyTree: %v", err)
	}
	if result.Copied != 2 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Failed() || result.Err() != nil {
		t.Fatalf("unexpected errors %+v", result.Errors)
	}

	got, err := os.ReadFile(filepath.Join(dst, "Genshin", "Config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "user edited" {
		t.Fatalf("existing destination overwritten: %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "Honkai", "Config.json")); err != nil {
		t.Fatalf("expected copied file: %v", err)
	}
}

func TestCopyTreeFollowsSymlinks(t *testing.T) {
	src := t.TempDir()
	outside := t.TempDir()
	dst := filepath.Join(t.TempDir(), "target")

	mustWrite(t, filepath.Join(outside, "shared.ini"), "shared")
	mustWrite(t, filepath.Join(outside, "Starrail", "Config.json"), "linked game")
	mustWrite(t, filepath.Join(src, "Genshin", "Config.json"), "bundled")
	links := [][2]string{
		{filepath.Join(outside, "shared.ini"), filepath.Join(src, "Genshin", "d3dx.ini")},
		{filepath.Join(outside, "Starrail"), filepath.Join(src, "Starrail")},
		{filepath.Join(outside, "missing.png"), filepath.Join(src, "Genshin", "Icon.png")},
		{src, filepath.Join(src, "Genshin", "loop")},
	}
	for _, l := range links {
		if err := os.Symlink(l[0], l[1]); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	result, err := CopyTree(src, dst)
	if err != nil {
		t.Fatalf("CopyTree: %v", err)
	}
	if result.Copied != 3 {
		t.Fatalf("expected 3 copied files, got %+v", result)
	}
	if len(result.Errors) != 2 || result.Err() == nil {
		t.Fatalf("expected dangling link and cycle errors, got %+v", result.Errors)
	}

	for path, want := range map[string]string{
		filepath.Join(dst, "Genshin", "d3dx.ini"):     "shared",
		filepath.Join(dst, "Starrail", "Config.json"): "linked game",
	} {
		info, err := os.Lstat(path)
		if err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
		if !info.Mode().IsRegular() {
			t.Fatalf("%s copied as %s, want regular file", path, info.Mode().Type())
		}
		got, _ := os.ReadFile(path)
		if string(got) != want {
			t.Fatalf("%s = %q, want %q", path, got, want)
		}
	}
	if info, err := os.Lstat(filepath.Join(dst, "Starrail")); err != nil || info.Mode()&os.ModeSymlink != 0 {
		t.Fatalf("linked directory should be mirrored as a real directory: %v", err)
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	if _, err := CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir()); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "GameIconConfig.json")

	if err := WriteFileAtomic(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "two" {
		t.Fatalf("got %q", got)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestDisplayPath(t *testing.T) {
	got := DisplayPath(`\\?\C:\Games\Genshin\Icon.png`)
	if got != "C:/Games/Genshin/Icon.png" {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(DisplayPath("/tmp/a/b"), `\`) {
		t.Fatal("unexpected backslash")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
