package shell

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := map[string]string{"windows": "explorer", "darwin": "open", "linux": "xdg-open", "freebsd": "xdg-open"}
	for goos, want := range tests {
		name, args := Command(goos, "/games/Genshin")
		if name != want || len(args) != 1 || args[0] != "/games/Genshin" {
			t.Fatalf("Command(%s) = %s %v", goos, name, args)
		}
	}
}

func TestOpenMissingPath(t *testing.T) {
	if err := Open(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing path")
	}
}
