// Package pipeline runs the merge flow over an ordered list of sources:
// fetch, normalize, extract and deduplicate.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"submerge/internal/fetcher"
	"submerge/internal/htmltext"
	"submerge/internal/logger"
	"submerge/internal/nodes"
	"submerge/internal/normalizer"
	"submerge/internal/report"
)

// Fetcher retrieves the body of a single source.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Result, error)
}

// Options tunes how fetched bodies are turned into text.
type Options struct {
	// HTMLSelector, when set, narrows HTML responses to the text of the
	// matching elements before normalization.
	HTMLSelector string
}

// Pipeline processes sources one at a time, in order.
type Pipeline struct {
	fetcher   Fetcher
	processor *normalizer.Processor
	log       *logger.Logger
	opts      Options
	now       func() time.Time
}

// New creates a pipeline. A nil logger discards output.
func New(f Fetcher, log *logger.Logger, opts Options) *Pipeline {
	if log == nil {
		log = logger.Discard()
	}

	return &Pipeline{
		fetcher:   f,
		processor: normalizer.NewProcessor(),
		log:       log,
		opts:      opts,
		now:       time.Now,
	}
}

// Run processes every source and returns the merged, deduplicated node list
// in first-seen order. A failing source is logged and contributes nothing.
// Only cancellation of ctx stops the loop early; the summary then holds what
// was collected so far and the remaining sources are marked canceled.
func (p *Pipeline) Run(ctx context.Context, sources []string) (*report.Summary, error) {
	summary := &report.Summary{
		StartedAt: p.now(),
		Sources:   make([]report.SourceResult, 0, len(sources)),
	}

	set := nodes.NewSet()

	var runErr error

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			runErr = err

			for _, rest := range sources[i:] {
				summary.Sources = append(summary.Sources, report.SourceResult{
					URL:    rest,
					Status: report.StatusCanceled,
					Err:    err,
				})
			}

			break
		}

		summary.Sources = append(summary.Sources, p.processSource(ctx, src, set))
	}

	if runErr == nil {
		runErr = ctx.Err()
	}

	summary.Nodes = set.Items()
	summary.FinishedAt = p.now()

	decoded, plain := p.processor.Counts()
	p.log.Debug(fmt.Sprintf("Bodies processed: base64=%d, plain=%d", decoded, plain))

	return summary, runErr
}

func (p *Pipeline) processSource(ctx context.Context, src string, set *nodes.Set) report.SourceResult {
	startTime := p.now()
	result := report.SourceResult{URL: src}

	p.log.Info(fmt.Sprintf("Fetching %s", src))

	res, err := p.fetcher.Fetch(ctx, src)
	if err != nil {
		result.Duration = p.now().Sub(startTime)
		result.Err = err

		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			result.Status = report.StatusCanceled
			p.log.Warn(fmt.Sprintf("Canceled %s: %v", src, err))

			return result
		}

		result.Status = report.StatusFailed
		p.log.Error(fmt.Sprintf("Failed to fetch %s: %v", src, err))

		return result
	}

	body := p.selectText(res)
	norm := p.processor.Process(body)
	found := nodes.Extract(norm.Text)

	result.Status = report.StatusOK
	result.Encoding = string(norm.Encoding)
	result.Extracted = len(found)
	result.New = set.Add(found...)
	result.Duration = p.now().Sub(startTime)

	p.log.Info(fmt.Sprintf("Parsed %s: encoding=%s, nodes=%d, new=%d", src, norm.Encoding, result.Extracted, result.New))

	return result
}

// selectText returns the body to normalize. HTML responses are narrowed to
// the configured selector; when nothing matches the raw body is kept.
func (p *Pipeline) selectText(res *fetcher.Result) string {
	if p.opts.HTMLSelector == "" || !htmltext.IsHTML(res.ContentType) {
		return res.Body
	}

	text, err := htmltext.Extract(res.Body, p.opts.HTMLSelector)
	if err != nil {
		p.log.Debug(fmt.Sprintf("HTML extraction skipped for %s: %v", res.URL, err))

		return res.Body
	}

	return text
}
