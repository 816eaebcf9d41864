// Package markd converts documents written in a small markdown-like syntax
// into standalone HTML pages.
//
// # Quick Start
//
//	conv := markd.NewConverter()
//	doc, err := conv.Convert(ctx, "notes/intro.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("intro.html", []byte(doc.HTML), 0644)
//
// # Syntax
//
// Only the following constructs are recognized, each by a regular expression
// applied line by line:
//
//   - "! Title" on any line sets the page title (first occurrence only)
//   - "# ", "## ", "### " and "#### " start headings h1 to h4
//   - "**text**" becomes strong, "*text*" becomes em
//   - an empty line becomes <br />
//
// Emphasis needs a character in front of the opening marker, so markup at
// the very start of a document stays literal. Input is never HTML-escaped
// and converting the output a second time is not a no-op.
//
// # Conversion Pipeline
//
//  1. Optional line-ending normalization (WithNormalizeLineEndings)
//  2. Title extraction from the untouched source
//  3. Substitution rules, in order, each consuming the previous output
//  4. Wrapping in the HTML shell, with an optional <style> block (WithCSS)
//
// # Errors
//
// Convert returns errors wrapping ErrNotFound, ErrUnsupported, ErrIO or
// ErrEncoding. Files whose name starts with "." are rejected as ErrUnsupported.
package markd
