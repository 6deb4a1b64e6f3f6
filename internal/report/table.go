package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays out rows as a markdown table whose columns are padded to
// their display width, so wide runes in URLs and errors stay aligned.
// A nil row is rendered as the separator.
func formatTable(rows [][]string) []string {
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return nil
	}

	// Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(rows))

	for _, row := range rows {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if row == nil {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
				sb.WriteString(" |")

				continue
			}

			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
