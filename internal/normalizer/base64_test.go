package normalizer

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

const bundle = "ss://YWVzLTEyOC1nY206cGFzcw@203.0.113.7:8388#tokyo\nvless://uuid@198.51.100.2:443?security=tls#osaka\n"

func TestIsProbablyBase64(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"too short", strings.Repeat("A", 39), false},
		{"exactly forty", strings.Repeat("A", 40), true},
		{"short after trimming", "   " + strings.Repeat("A", 39) + "\n\n", false},
		{"padding and inner whitespace", strings.Repeat("QUJD", 8) + "\nQUJD QUJD==\n", true},
		{"url-safe alphabet rejected", strings.Repeat("A", 40) + "-_", false},
		{"plain node list rejected", "vless://A\nnot-a-node\ntrojan://B\nvless://C\ntrojan://D", false},
		{"unicode whitespace passes the gate", strings.Repeat("A", 20) + "\u00a0" + strings.Repeat("A", 20), true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProbablyBase64(tt.input); got != tt.want {
				t.Errorf("IsProbablyBase64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeLenient(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"complete quantum with extra padding", "QUJD===", "ABC", nil},
		{"two chars completed by padding", "QQ===", "A", nil},
		{"three chars completed by padding", "QUI===", "AB", nil},
		{"whitespace skipped", "QU\nJD\r\n QUJD", "ABCABC", nil},
		{"stops at first completed padding", "QQ==QUJD", "A", nil},
		{"leading padding ignored", "==QUJD", "ABC", nil},
		{"dangling single character", "QUJDR===", "", ErrDanglingChar},
		{"missing padding without suffix", "QUI", "", ErrIncorrectPadding},
		{"non-ascii rejected", "QUJD\u00a0===", "", ErrNonASCII},
		{"empty input", "===", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLenient(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeLenient() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("DecodeLenient() unexpected error: %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("DecodeLenient() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeLenient_MatchesStdlibOnCanonicalInput(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 10, 57, 58, 59} {
		raw := []byte(strings.Repeat("vmess://node\n", 5))[:n]
		enc := base64.StdEncoding.EncodeToString(raw)

		got, err := DecodeLenient(enc + paddingSuffix)
		if err != nil {
			t.Fatalf("len %d: unexpected error: %v", n, err)
		}

		if string(got) != string(raw) {
			t.Errorf("len %d: got %q, want %q", n, got, raw)
		}
	}
}

func TestTryDecode(t *testing.T) {
	t.Run("padded bundle", func(t *testing.T) {
		text, ok := TryDecode(base64.StdEncoding.EncodeToString([]byte(bundle)))
		if !ok {
			t.Fatal("expected bundle to decode")
		}

		if text != bundle {
			t.Errorf("TryDecode() = %q, want %q", text, bundle)
		}
	})

	t.Run("unpadded bundle", func(t *testing.T) {
		enc := base64.RawStdEncoding.EncodeToString([]byte(bundle + "x"))

		text, ok := TryDecode(enc)
		if !ok {
			t.Fatal("expected unpadded bundle to decode")
		}

		if text != bundle+"x" {
			t.Errorf("TryDecode() = %q, want %q", text, bundle+"x")
		}
	})

	t.Run("line-wrapped bundle", func(t *testing.T) {
		enc := base64.StdEncoding.EncodeToString([]byte(bundle))

		var wrapped strings.Builder
		for i := 0; i < len(enc); i += 20 {
			end := min(i+20, len(enc))
			wrapped.WriteString(enc[i:end])
			wrapped.WriteString("\r\n")
		}

		if _, ok := TryDecode(wrapped.String()); !ok {
			t.Fatal("expected wrapped bundle to decode")
		}
	})

	t.Run("no recognized scheme", func(t *testing.T) {
		enc := base64.StdEncoding.EncodeToString([]byte("just some words that are not a node list at all"))
		if _, ok := TryDecode(enc); ok {
			t.Fatal("decoded text without a node scheme must be rejected")
		}
	})

	t.Run("invalid utf-8 dropped", func(t *testing.T) {
		raw := append([]byte{0xff, 0xfe}, []byte("ss://X\n")...)

		text, ok := TryDecode(base64.StdEncoding.EncodeToString(raw))
		if !ok {
			t.Fatal("expected decode to succeed")
		}

		if text != "ss://X\n" {
			t.Errorf("TryDecode() = %q, want invalid bytes dropped", text)
		}
	})

	t.Run("dangling character fails", func(t *testing.T) {
		enc := base64.StdEncoding.EncodeToString([]byte(bundle[:48])) + "Q"
		if _, ok := TryDecode(enc); ok {
			t.Fatal("input with one extra data character must fail")
		}
	})
}
