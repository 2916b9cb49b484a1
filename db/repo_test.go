package db

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Mozilla/5.0", 255, "Mozilla/5.0"},
		{"abcdef", 3, "abc"},
		{strings.Repeat("a", 254) + "ữ", 255, strings.Repeat("a", 254)},
		{"ữữ", 4, "ữ"},
		{"ữ", 1, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) || len(got) > tt.n {
			t.Fatalf("truncate(%q, %d) = %q: invalid result", tt.in, tt.n, got)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  A@TDMU.edu.vn "); got != "a@tdmu.edu.vn" {
		t.Fatalf("got %q", got)
	}
}
