package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// DefaultTitle is used when the source has no title line.
const DefaultTitle = "Markdown Page"

// titlePattern matches a line starting with "!" and whitespace.
var titlePattern = regexp.MustCompile(`(?m)^!\s(.*)`)

// TitleExtractor defines the contract for the title pre-pass.
type TitleExtractor interface {
	ExtractTitle(ctx context.Context, source string) TitleResult
}

// TitleResult holds the outcome of title extraction.
type TitleResult struct {
	Title string // extracted title, or the fallback
	Body  string // source with the title line text removed
	Found bool   // false when the fallback was used
}

// DirectiveTitleExtractor takes the title from the first "! Title" line.
type DirectiveTitleExtractor struct {
	rule     Rule
	fallback string
}

// NewDirectiveTitleExtractor creates an extractor that falls back to
// fallback when no title line exists. An empty fallback means DefaultTitle.
func NewDirectiveTitleExtractor(fallback string) *DirectiveTitleExtractor {
	if fallback == "" {
		fallback = DefaultTitle
	}
	return &DirectiveTitleExtractor{
		rule:     Rule{name: "title", pattern: titlePattern, replacement: "${1}", kind: TitleExtraction},
		fallback: fallback,
	}
}

// Fallback returns the title used when none is found.
func (e *DirectiveTitleExtractor) Fallback() string {
	return e.fallback
}

// ExtractTitle scans the untouched source for the first title line.
// Only the literal matched text is removed; the line break after it stays,
// so the emptied line later becomes a <br />.
func (e *DirectiveTitleExtractor) ExtractTitle(ctx context.Context, source string) TitleResult {
	if ctx.Err() != nil {
		return TitleResult{Title: e.fallback, Body: source}
	}

	loc := e.rule.pattern.FindStringSubmatchIndex(source)
	if loc == nil {
		return TitleResult{Title: e.fallback, Body: source}
	}

	var title []byte
	title = e.rule.pattern.ExpandString(title, e.rule.replacement, source, loc)

	var b strings.Builder
	b.Grow(len(source) - (loc[1] - loc[0]))
	b.WriteString(source[:loc[0]])
	b.WriteString(source[loc[1]:])

	return TitleResult{Title: string(title), Body: b.String(), Found: true}
}
