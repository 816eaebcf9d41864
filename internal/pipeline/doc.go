// Package pipeline implements the text-to-HTML conversion stages.
//
// A conversion runs these stages in order:
//   - optional line-ending normalization (CRLF and CR to LF)
//   - title extraction, a pre-pass over the untouched source
//   - the rule engine, an ordered list of regexp substitutions
//   - the HTML shell, which wraps title and body into a document
//
// The rule set is an immutable value built once and passed explicitly to
// whoever applies it. Reordering rules changes the output, so DefaultRuleSet
// fixes the order: headings h1 through h4, strong, em, then blank lines.
//
// None of the stages are HTML-aware. Running the rules over their own output
// is not idempotent.
package pipeline
