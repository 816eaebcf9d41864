package pipeline

import (
	"context"
	"regexp"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Preprocessor defines the contract for the optional source pre-pass.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// LineEndingNormalizer converts \r\n and \r to \n so that line anchors and
// the blank-line rule see CRLF files the same way as LF files.
type LineEndingNormalizer struct{}

// Preprocess normalizes line endings. Returns content unchanged if ctx is done.
func (LineEndingNormalizer) Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// NopPreprocessor returns its input unchanged.
type NopPreprocessor struct{}

// Preprocess returns content as is.
func (NopPreprocessor) Preprocess(_ context.Context, content string) string {
	return content
}
