package pipeline

import (
	"context"
	"strings"
)

// Shell markup around the converted body. Kept on one line: the output is
// compared byte for byte by callers.
const (
	shellHead  = "<!DOCTYPE html><html><head><title>"
	shellBody  = "</title></head><body>"
	shellClose = "</body></html>"
)

// Wrap assembles a standalone HTML document from a title and a body.
// Neither value is escaped.
func Wrap(title, body string) string {
	var b strings.Builder
	b.Grow(len(shellHead) + len(title) + len(shellBody) + len(body) + len(shellClose))
	b.WriteString(shellHead)
	b.WriteString(title)
	b.WriteString(shellBody)
	b.WriteString(body)
	b.WriteString(shellClose)
	return b.String()
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body> when there
// is no head, or at the start of the content as a last resort.
// Returns htmlContent unchanged when cssContent is empty.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
