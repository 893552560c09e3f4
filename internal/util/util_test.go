// internal/util/util_test.go
package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := TruncateRunes("abcdefgh", 4); got != "abcd…" {
		t.Fatalf("expected truncated string with ellipsis, got %q", got)
	}
	// Multibyte runes must not be split mid-sequence.
	if got := TruncateRunes("héllo wörld", 5); got != "héllo…" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}

func TestOneLine(t *testing.T) {
	if got := OneLine("a\n b\t\tc  d"); got != "a b c d" {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("first line\nsecond line", 12); got != "first line s…" {
		t.Fatalf("unexpected snippet %q", got)
	}
}
