package markd

import (
	"log/slog"

	"github.com/alnah/go-markd/internal/pipeline"
)

// RuleSet is an immutable, ordered list of substitution rules.
type RuleSet = pipeline.RuleSet

// DefaultRuleSet returns the seven built-in rules: h1 to h4, strong, em and
// blank-line breaks, in that order.
func DefaultRuleSet() *RuleSet {
	return pipeline.DefaultRuleSet()
}

// DefaultTitle is the page title used when a document has no "! " line.
const DefaultTitle = pipeline.DefaultTitle

// Document is the result of one conversion.
type Document struct {
	Path       string // source path, empty for ConvertString
	Source     string // decoded source text
	Body       string // text after every rule ran
	Title      string // extracted or default title
	TitleFound bool   // false when the default title was used
	HTML       string // complete HTML document
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	defaultTitle      string
	css               string
	normalizeNewlines bool
	rules             *RuleSet
}

// WithLogger sets the logger used for progress records.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRuleSet replaces the default rule set. Nil is ignored.
func WithRuleSet(rules *RuleSet) Option {
	return func(c *Converter) {
		if rules != nil {
			c.cfg.rules = rules
		}
	}
}

// WithDefaultTitle sets the title used when a document has no title line.
// Empty keeps DefaultTitle.
func WithDefaultTitle(title string) Option {
	return func(c *Converter) {
		if title != "" {
			c.cfg.defaultTitle = title
		}
	}
}

// WithCSS injects css as a <style> block before </head> of every document.
func WithCSS(css string) Option {
	return func(c *Converter) {
		c.cfg.css = css
	}
}

// WithNormalizeLineEndings converts CRLF and lone CR to LF before conversion.
// Off by default, in which case a line holding only "\r" is not blank.
func WithNormalizeLineEndings(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.normalizeNewlines = enabled
	}
}
