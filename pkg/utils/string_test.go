package utils

import "testing"

func TestTrimWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  vless://a  ", "vless://a"},
		{"\t\r\nss://b\v\f", "ss://b"},
		{"\x1cssr://c\x1f", "ssr://c"},
		{"\u00a0tuic://d\u3000", "tuic://d"},
		{"\ufefftrojan://e", "\ufefftrojan://e"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TrimWhitespace(tt.in); got != tt.want {
			t.Errorf("TrimWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  a \t b\n\nc  "); got != "a b c" {
		t.Errorf("NormalizeWhitespace() = %q, want %q", got, "a b c")
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString() = %q, want unchanged", got)
	}

	if got := TruncateString("abcdefgh", 3); got != "abc..." {
		t.Errorf("TruncateString() = %q, want %q", got, "abc...")
	}

	if got := TruncateString("節點訂閱地址", 2); got != "節點..." {
		t.Errorf("TruncateString() = %q, want rune-safe cut", got)
	}
}
