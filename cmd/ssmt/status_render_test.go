package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("Image", statusWarn, "cleanup incomplete", false)
	if plain != "Image:       [WARN] cleanup incomplete" {
		t.Fatalf("unexpected plain line %q", plain)
	}
	colored := renderStatusLine("Image", statusOK, "done", true)
	if !strings.HasPrefix(colored, statusStyles[statusOK].color) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected ansi wrapping, got %q", colored)
	}
}

func TestShouldColorizeNonTerminal(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestTitleWord(t *testing.T) {
	if got := titleWord("video"); got != "Video" {
		t.Fatalf("titleWord = %q", got)
	}
}
