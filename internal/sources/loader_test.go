package sources

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "skips blanks and comments",
			input: `# free subscriptions
https://example.com/a.txt

   # indented comment
  https://example.com/b.txt
`,
			want: []string{"https://example.com/a.txt", "https://example.com/b.txt"},
		},
		{
			name:  "windows and old mac line endings",
			input: "https://a.example\r\nhttps://b.example\rhttps://c.example",
			want:  []string{"https://a.example", "https://b.example", "https://c.example"},
		},
		{
			name:  "unicode line separators",
			input: "https://a.example\u2028https://b.example\u0085https://c.example",
			want:  []string{"https://a.example", "https://b.example", "https://c.example"},
		},
		{
			name:  "byte order mark dropped",
			input: "\ufeffhttps://a.example\n",
			want:  []string{"https://a.example"},
		},
		{
			name:  "malformed entries kept for fetch time",
			input: "not a url\nhttps://ok.example",
			want:  []string{"not a url", "https://ok.example"},
		},
		{
			name:  "only comments",
			input: "# one\n#two\n\n",
			want:  nil,
		},
		{
			name:  "keeps order and duplicates",
			input: "https://b.example\nhttps://a.example\nhttps://b.example",
			want:  []string{"https://b.example", "https://a.example", "https://b.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse(strings.NewReader("https://a.example\n\xff\xfe\n"))
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("Parse() error = %v, want ErrInvalidEncoding", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	if err := os.WriteFile(path, []byte("https://a.example\n# c\nhttps://b.example\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}
}
