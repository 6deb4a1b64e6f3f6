// Package nodes recognizes proxy node URIs in text and collects them in first-seen order.
package nodes

import (
	"strings"

	"submerge/pkg/utils"
)

// Prefixes lists the recognized node schemes. Matching is literal and case-sensitive.
var Prefixes = []string{
	"vless://",
	"vmess://",
	"trojan://",
	"ss://",
	"ssr://",
	"hysteria://",
	"hysteria2://",
	"tuic://",
}

// HasKnownPrefix reports whether line starts with a recognized scheme.
func HasKnownPrefix(line string) bool {
	for _, p := range Prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}

	return false
}

// ContainsKnownPrefix reports whether a recognized scheme occurs anywhere in text.
func ContainsKnownPrefix(text string) bool {
	for _, p := range Prefixes {
		if strings.Contains(text, p) {
			return true
		}
	}

	return false
}

// Extract returns the trimmed lines of text that start with a recognized
// scheme, in order. Carriage returns count as line breaks.
func Extract(text string) []string {
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string

	for _, line := range strings.Split(text, "\n") {
		line = utils.TrimWhitespace(line)
		if line == "" {
			continue
		}

		if HasKnownPrefix(line) {
			out = append(out, line)
		}
	}

	return out
}
