package markd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-markd/internal/fileutil"
	"github.com/alnah/go-markd/internal/pipeline"
	"github.com/alnah/go-markd/internal/textenc"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor   = pipeline.LineEndingNormalizer{}
	_ pipeline.Preprocessor   = pipeline.NopPreprocessor{}
	_ pipeline.TitleExtractor = (*pipeline.DirectiveTitleExtractor)(nil)
	_ pipeline.Substituter    = (*pipeline.RuleEngine)(nil)
	_ pipeline.CSSInjector    = (*pipeline.CSSInjection)(nil)
)

// Converter turns source files into HTML documents.
// A Converter is immutable after NewConverter and safe for concurrent use.
type Converter struct {
	cfg            converterConfig
	logger         *slog.Logger
	preprocessor   pipeline.Preprocessor
	titleExtractor pipeline.TitleExtractor
	substituter    pipeline.Substituter
	cssInjector    pipeline.CSSInjector
}

// NewConverter creates a Converter with the default rule set and title.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			defaultTitle: DefaultTitle,
			rules:        pipeline.DefaultRuleSet(),
		},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.substituter = pipeline.NewRuleEngine(c.cfg.rules)
	c.titleExtractor = pipeline.NewDirectiveTitleExtractor(c.cfg.defaultTitle)
	if c.cfg.normalizeNewlines {
		c.preprocessor = pipeline.LineEndingNormalizer{}
	} else {
		c.preprocessor = pipeline.NopPreprocessor{}
	}

	return c
}

// Rules returns the rule set applied by the converter.
func (c *Converter) Rules() *RuleSet {
	return c.cfg.rules
}

// Convert reads the file at path and converts it.
//
// Checks run in this order: an empty or unusable path is ErrUnsupported;
// a path that is not an existing regular file is ErrNotFound; a base name
// starting with "." is ErrUnsupported; a read failure is ErrIO; content
// that is not text is ErrEncoding.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, path string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Info("Converting", "path", path)

	if err := checkPath(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}

	source, err := textenc.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncoding, path, err)
	}

	doc, err = c.render(ctx, path, source)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ConvertString converts in-memory source text. No file checks apply.
func (c *Converter) ConvertString(ctx context.Context, source string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.render(ctx, "", source)
}

// checkPath applies the path preconditions of Convert.
func checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrUnsupported)
	}
	switch base := filepath.Base(path); base {
	case ".", string(filepath.Separator):
		return fmt.Errorf("%w: %s has no file name", ErrUnsupported, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}

	if fileutil.IsHidden(path) {
		return fmt.Errorf("%w: %s is hidden", ErrUnsupported, path)
	}
	return nil
}

// render runs normalization, title extraction, substitution and wrapping.
func (c *Converter) render(ctx context.Context, path, source string) (*Document, error) {
	c.logger.Debug("Parsing", "path", path, "bytes", len(source))

	text := c.preprocessor.Preprocess(ctx, source)

	title := c.titleExtractor.ExtractTitle(ctx, text)
	c.logger.Debug("Title", "path", path, "title", title.Title, "found", title.Found)

	body, err := c.substituter.Substitute(ctx, title.Body)
	if err != nil {
		return nil, err
	}

	html := pipeline.Wrap(title.Title, body)
	html = c.cssInjector.InjectCSS(ctx, html, c.cfg.css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Document{
		Path:       path,
		Source:     source,
		Body:       body,
		Title:      title.Title,
		TitleFound: title.Found,
		HTML:       html,
	}, nil
}
