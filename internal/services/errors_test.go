package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ssmt/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrIO, "assets", "copy", "C:/games/Background.png", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"assets", "copy", "C:/games/Background.png", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected io marker by default, got %v", err)
	}
	if !strings.Contains(err.Error(), "operation failed") {
		t.Fatalf("expected fallback detail, got %q", err)
	}
}

func TestKindMapping(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrNotFound, "resolver", "resolve", "Games", nil), "not_found"},
		{services.Wrap(services.ErrParse, "catalog", "decode", "data", nil), "parse"},
		{services.Wrap(services.ErrUnsupported, "assets", "kind", "audio", nil), "unsupported"},
		{services.Wrap(services.ErrNetwork, "catalog", "get", "503", nil), "network"},
		{services.Wrap(services.ErrTimeout, "catalog", "get", "deadline", nil), "timeout"},
		{fmt.Errorf("outer: %w", services.Wrap(services.ErrIO, "fs", "write", "x", nil)), "io"},
		{errors.New("plain"), "internal"},
	}
	for _, tc := range cases {
		if got := services.Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
