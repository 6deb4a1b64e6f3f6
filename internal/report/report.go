// Package report summarizes a merge run as a markdown document.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"submerge/pkg/utils"
)

// Status describes how a single source ended.
type Status string

// Source statuses.
const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

const maxCellRunes = 60

// SourceResult records what one source contributed to a run.
type SourceResult struct {
	URL       string
	Status    Status
	Encoding  string
	Extracted int
	New       int
	Duration  time.Duration
	Err       error
}

// Summary is the outcome of one merge run.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Sources    []SourceResult
	Nodes      []string
	Checksum   string
}

// Count returns the number of sources that ended with status.
func (s *Summary) Count(status Status) int {
	n := 0

	for _, r := range s.Sources {
		if r.Status == status {
			n++
		}
	}

	return n
}

// Render produces the markdown report for s.
func Render(s *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Subscription merge report\n\n")

	if s.RunID != "" {
		fmt.Fprintf(&sb, "- Run: `%s`\n", s.RunID)
	}

	if !s.StartedAt.IsZero() {
		fmt.Fprintf(&sb, "- Started: %s\n", s.StartedAt.UTC().Format(time.RFC3339))
	}

	if !s.FinishedAt.IsZero() && !s.StartedAt.IsZero() {
		fmt.Fprintf(&sb, "- Duration: %s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
	}

	fmt.Fprintf(&sb, "- Sources: %d (ok %d, failed %d, canceled %d)\n",
		len(s.Sources), s.Count(StatusOK), s.Count(StatusFailed), s.Count(StatusCanceled))
	fmt.Fprintf(&sb, "- Nodes: %d\n", len(s.Nodes))

	if s.Checksum != "" {
		fmt.Fprintf(&sb, "- SHA-256: `%s`\n", s.Checksum)
	}

	if len(s.Sources) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")

	rows := [][]string{
		{"#", "Source", "Status", "Encoding", "Extracted", "New", "Time", "Error"},
		nil, // separator
	}

	for i, r := range s.Sources {
		errText := ""
		if r.Err != nil {
			errText = utils.TruncateString(escapeCell(r.Err.Error()), maxCellRunes)
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			utils.TruncateString(escapeCell(r.URL), maxCellRunes),
			string(r.Status),
			r.Encoding,
			strconv.Itoa(r.Extracted),
			strconv.Itoa(r.New),
			r.Duration.Round(time.Millisecond).String(),
			errText,
		})
	}

	for _, line := range formatTable(rows) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)

	return utils.NormalizeWhitespace(s)
}
