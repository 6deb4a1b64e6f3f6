// Package normalizer turns fetched subscription bodies into scannable node text.
package normalizer

// Encoding names the form a source body was found in.
type Encoding string

// Body encodings.
const (
	EncodingPlain  Encoding = "plain"
	EncodingBase64 Encoding = "base64"
)

// Normalized is the text chosen for extraction and how it was obtained.
type Normalized struct {
	Text     string
	Encoding Encoding
}

// Processor decides, per body, whether to scan the decoded bundle or the raw text.
type Processor struct {
	decoded int
	plain   int
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process returns the decoded bundle when raw passes the base64 heuristic and
// decodes to text naming a recognized node scheme, otherwise raw unchanged.
func (p *Processor) Process(raw string) Normalized {
	if IsProbablyBase64(raw) {
		if text, ok := TryDecode(raw); ok {
			p.decoded++

			return Normalized{Text: text, Encoding: EncodingBase64}
		}
	}

	p.plain++

	return Normalized{Text: raw, Encoding: EncodingPlain}
}

// Counts returns how many bodies were decoded and how many were used as-is.
func (p *Processor) Counts() (decoded, plain int) {
	return p.decoded, p.plain
}
