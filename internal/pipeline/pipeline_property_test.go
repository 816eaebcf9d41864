//go:build property

package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPipelineProperties validates invariants of the rule engine and title pre-pass.
func TestPipelineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	rules := DefaultRuleSet()
	extractor := NewDirectiveTitleExtractor("")

	// Lines drawn from a small alphabet that exercises every rule.
	lineGen := gen.OneConstOf(
		"", "# a", "## b", "### c", "#### d", "##### e", "#f",
		"x **y** z", "p *q* r", "**s**", "*t*", `u \**v**`, "! w", "!x", "plain",
	)
	docGen := gen.SliceOf(lineGen).Map(func(lines []string) string {
		return strings.Join(lines, "\n")
	})

	// Property: Apply is a pure function of its input
	properties.Property("apply is deterministic", prop.ForAll(
		func(doc string) bool {
			return Apply(doc, rules) == Apply(doc, rules)
		},
		docGen,
	))

	// Property: the engine and Apply agree
	properties.Property("engine matches Apply", prop.ForAll(
		func(doc string) bool {
			got, err := NewRuleEngine(rules).Substitute(context.Background(), doc)
			return err == nil && got == Apply(doc, rules)
		},
		docGen,
	))

	// Property: no heading tag appears without a hash in the input
	properties.Property("headings need a hash", prop.ForAll(
		func(doc string) bool {
			if strings.Contains(doc, "#") {
				return true
			}
			out := Apply(doc, rules)
			return !strings.Contains(out, "<h1>") && !strings.Contains(out, "<h2>") &&
				!strings.Contains(out, "<h3>") && !strings.Contains(out, "<h4>")
		},
		docGen,
	))

	// Property: no empty line survives the pipeline
	properties.Property("blank lines are replaced", prop.ForAll(
		func(doc string) bool {
			for _, line := range strings.Split(Apply(doc, rules), "\n") {
				if line == "" {
					return false
				}
			}
			return true
		},
		docGen,
	))

	// Property: an extracted title line never survives in the body
	properties.Property("title line is removed from body", prop.ForAll(
		func(doc string) bool {
			res := extractor.ExtractTitle(context.Background(), doc)
			if !res.Found {
				return res.Body == doc && res.Title == DefaultTitle
			}
			return len(res.Body) == len(doc)-len("! ")-len(res.Title)
		},
		docGen,
	))

	properties.TestingRun(t)
}
