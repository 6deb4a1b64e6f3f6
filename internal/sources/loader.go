// Package sources reads the list of subscription URLs to merge.
package sources

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"submerge/pkg/utils"
)

// ErrInvalidEncoding indicates a source list that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("source list is not valid UTF-8")

const (
	commentPrefix = "#"
	byteOrderMark = "\ufeff"
)

// Load reads the source list at path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source list: %w", err)
	}
	defer f.Close()

	list, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read source list %s: %w", path, err)
	}

	return list, nil
}

// Parse returns the entries of a source list in order. Each line is trimmed;
// blank lines and lines starting with '#' are dropped. Entries are not
// checked for being well-formed URLs.
func Parse(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	text := strings.TrimPrefix(string(data), byteOrderMark)

	var list []string

	for _, line := range strings.FieldsFunc(text, isLineBoundary) {
		line = utils.TrimWhitespace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		list = append(list, line)
	}

	return list, nil
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}

	return false
}
