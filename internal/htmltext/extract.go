// Package htmltext pulls readable text out of HTML pages that publish nodes
// inside markup, such as public channel previews.
package htmltext

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoMatches indicates that the selector matched nothing on the page.
var ErrNoMatches = errors.New("selector matched no elements")

// IsHTML reports whether a Content-Type header value names an HTML document.
func IsHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Extract returns the text of every element matching selector, one element
// per line. Line breaks (<br>) inside an element are kept as newlines so
// that several links posted in one message end up on separate lines.
func Extract(page, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoMatches, selector)
	}

	var sb strings.Builder

	sel.Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			writeText(&sb, n)
		}

		sb.WriteString("\n")
	})

	return sb.String(), nil
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)

		return
	case html.ElementNode:
		if n.Data == "br" {
			sb.WriteString("\n")

			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
}
