package normalizer

import (
	"errors"
	"strings"
	"unicode/utf8"

	"submerge/internal/nodes"
	"submerge/pkg/utils"
)

// Decoding errors.
var (
	ErrNonASCII         = errors.New("base64 input contains non-ASCII characters")
	ErrDanglingChar     = errors.New("base64 input has one data character more than a multiple of 4")
	ErrIncorrectPadding = errors.New("base64 input has incorrect padding")
)

const (
	// minEncodedLen is the shortest trimmed body considered for decoding.
	minEncodedLen = 40

	// paddingSuffix is appended to every candidate before decoding so that
	// bodies published without padding still decode.
	paddingSuffix = "==="
)

// decodeTable maps ASCII bytes to their 6-bit value, 0xff for non-alphabet bytes.
var decodeTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 0xff
	}

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}

	return t
}()

func isAlphabetOrPad(r rune) bool {
	return r < utf8.RuneSelf && (decodeTable[r] != 0xff || r == '=')
}

// IsProbablyBase64 reports whether s looks like a base64 bundle: at least 40
// characters once trimmed, made only of the standard alphabet, '=' and whitespace.
func IsProbablyBase64(s string) bool {
	s = utils.TrimWhitespace(s)
	if utf8.RuneCountInString(s) < minEncodedLen {
		return false
	}

	for _, r := range s {
		if !isAlphabetOrPad(r) && !utils.IsSpace(r) {
			return false
		}
	}

	return true
}

// TryDecode decodes s as a base64 bundle of nodes. The boolean is false when
// decoding fails or the decoded text names no recognized node scheme.
func TryDecode(s string) (string, bool) {
	raw, err := DecodeLenient(utils.TrimWhitespace(s) + paddingSuffix)
	if err != nil {
		return "", false
	}

	text := strings.ToValidUTF8(string(raw), "")
	if !nodes.ContainsKnownPrefix(text) {
		return "", false
	}

	return text, true
}

// DecodeLenient decodes standard base64 without validation:
//   - bytes outside the alphabet are skipped,
//   - '=' seen before the second character of a quantum is ignored,
//   - decoding stops at the first padding that completes a quantum,
//     anything after it is discarded,
//   - input ending mid-quantum is an error.
//
// Non-ASCII input is rejected outright.
func DecodeLenient(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return nil, ErrNonASCII
		}
	}

	out := make([]byte, 0, len(s)/4*3+3)

	var leftover byte

	quadPos := 0
	pads := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		if c == '=' {
			if quadPos >= 2 {
				pads++
				if quadPos+pads >= 4 {
					return out, nil
				}
			}

			continue
		}

		v := decodeTable[c]
		if v == 0xff {
			continue
		}

		pads = 0

		switch quadPos {
		case 0:
			leftover = v
			quadPos = 1
		case 1:
			out = append(out, leftover<<2|v>>4)
			leftover = v & 0x0f
			quadPos = 2
		case 2:
			out = append(out, leftover<<4|v>>2)
			leftover = v & 0x03
			quadPos = 3
		default:
			out = append(out, leftover<<6|v)
			leftover = 0
			quadPos = 0
		}
	}

	switch quadPos {
	case 0:
		return out, nil
	case 1:
		return nil, ErrDanglingChar
	default:
		return nil, ErrIncorrectPadding
	}
}
