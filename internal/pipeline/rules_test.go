package pipeline

// Notes:
// - Expected strings follow Go's regexp leftmost-first semantics; emphasis
//   captures are greedy up to the last closing marker on the line.
// - Emphasis at the first character of the document is deliberately not
//   converted; on later lines the newline counts as the preceding character.

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDefaultRuleSet - Rule order and contents
// ---------------------------------------------------------------------------

func TestDefaultRuleSet_Order(t *testing.T) {
	t.Parallel()

	want := []string{RuleH1, RuleH2, RuleH3, RuleH4, RuleStrong, RuleEm, RuleBreak}
	rules := DefaultRuleSet().Rules()

	if len(rules) != len(want) {
		t.Fatalf("DefaultRuleSet().Len() = %d, want %d", len(rules), len(want))
	}
	for i, r := range rules {
		if r.Name() != want[i] {
			t.Errorf("rule %d = %q, want %q", i, r.Name(), want[i])
		}
		if r.Kind() != Substitution {
			t.Errorf("rule %q kind = %s, want substitution", r.Name(), r.Kind())
		}
	}
}

func TestRuleSet_RulesReturnsCopy(t *testing.T) {
	t.Parallel()

	rs := DefaultRuleSet()
	rules := rs.Rules()
	rules[0] = rules[len(rules)-1]

	if got := rs.Rules()[0].Name(); got != RuleH1 {
		t.Errorf("first rule after caller mutation = %q, want %q", got, RuleH1)
	}
}

func TestNewRuleSet_Errors(t *testing.T) {
	t.Parallel()

	title, err := NewRule("title", regexp.MustCompile(`^!\s(.*)`), "${1}", TitleExtraction)
	if err != nil {
		t.Fatalf("NewRule() error = %v", err)
	}

	tests := []struct {
		name    string
		rules   []Rule
		wantErr error
	}{
		{"empty", nil, ErrEmptyRuleSet},
		{"title rule", []Rule{title}, ErrRuleKind},
		{"zero rule", []Rule{{name: "zero"}}, ErrNilPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRuleSet(tt.rules...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewRuleSet() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRule_NilPattern(t *testing.T) {
	t.Parallel()

	_, err := NewRule("broken", nil, "", Substitution)
	if !errors.Is(err, ErrNilPattern) {
		t.Errorf("NewRule(nil) error = %v, want %v", err, ErrNilPattern)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{Substitution, "substitution"},
		{TitleExtraction, "title-extraction"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestApply - Substitution semantics
// ---------------------------------------------------------------------------

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"h1", "# Heading", "<h1>Heading</h1>"},
		{"h2 does not match h1", "## Heading", "<h2>Heading</h2>"},
		{"h3", "### Heading", "<h3>Heading</h3>"},
		{"h4", "#### Heading", "<h4>Heading</h4>"},
		{"five hashes untouched", "##### Heading", "##### Heading"},
		{"hash without space untouched", "#Heading", "#Heading"},
		{"hash mid-line untouched", "a # b", "a # b"},
		{"heading on later line", "intro\n# Title", "intro\n<h1>Title</h1>"},
		{"whitespace after hash may be a newline", "#\nfoo", "<h1>foo</h1>"},
		{"blank line", "a\n\nb", "a\n<br />\nb"},
		{"two blank lines", "a\n\n\nb", "a\n<br />\n<br />\nb"},
		{"trailing newline", "a\n", "a\n<br />"},
		{"empty input", "", "<br />"},
		{"strong keeps preceding char", "some **bold** text", "some <strong>bold</strong> text"},
		{"em keeps preceding char", "an *em* word", "an <em>em</em> word"},
		{"strong then em", "x **b** and *e*.", "x <strong>b</strong> and <em>e</em>."},
		{"strong at line start not converted", "**bold** first", "**bold** first"},
		{"em at line start not converted", "*em* first", "*em* first"},
		{"strong after newline converted", "a\n**b**", "a\n<strong>b</strong>"},
		{"escaped strong not converted", `a \**x**`, `a \**x**`},
		{"greedy strong leaves markers for em", "a **b** c **d**", "a <strong>b<em>* c *</em>d</strong>"},
		{"heading with strong", "# A **big** deal", "<h1>A <strong>big</strong> deal</h1>"},
	}

	rules := DefaultRuleSet()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Apply(tt.input, rules)
			if got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApply_H1LineHasNoOtherHeading(t *testing.T) {
	t.Parallel()

	got := Apply("text\n# Heading\nmore", DefaultRuleSet())
	for _, tag := range []string{"<h2>", "<h3>", "<h4>"} {
		if strings.Contains(got, tag) {
			t.Errorf("Apply() = %q, should not contain %s", got, tag)
		}
	}
	if !strings.Contains(got, "<h1>Heading</h1>") {
		t.Errorf("Apply() = %q, want <h1>Heading</h1>", got)
	}
}

func TestApply_SecondPassIsNotIdempotent(t *testing.T) {
	t.Parallel()

	rules := DefaultRuleSet()
	first := Apply("a **b **c** d**", rules)
	second := Apply(first, rules)

	if first != "a <strong>b <em>*c*</em> d</strong>" {
		t.Fatalf("first pass = %q", first)
	}
	if second == first {
		t.Errorf("second pass should change the output, got %q both times", first)
	}
	if !strings.Contains(second, "<em><em>c</em></em>") {
		t.Errorf("second pass = %q, want nested <em>", second)
	}
}

func TestApply_OrderMatters(t *testing.T) {
	t.Parallel()

	rules := DefaultRuleSet().Rules()
	reversed := make([]Rule, len(rules))
	for i, r := range rules {
		reversed[len(rules)-1-i] = r
	}
	rs, err := NewRuleSet(reversed...)
	if err != nil {
		t.Fatalf("NewRuleSet() error = %v", err)
	}

	// With br first, the emptied line becomes the h1 content.
	input := "#\n\nfoo"
	if Apply(input, rs) == Apply(input, DefaultRuleSet()) {
		t.Errorf("reversed rule order produced identical output for %q", input)
	}
}

// ---------------------------------------------------------------------------
// TestRuleEngine - Context handling
// ---------------------------------------------------------------------------

func TestRuleEngine_Substitute(t *testing.T) {
	t.Parallel()

	engine := NewRuleEngine(nil)
	got, err := engine.Substitute(context.Background(), "# A\n\nb")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if want := "<h1>A</h1>\n<br />\nb"; got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
	if engine.Rules().Len() != 7 {
		t.Errorf("nil rule set should default to 7 rules, got %d", engine.Rules().Len())
	}
}

func TestRuleEngine_SubstituteCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := NewRuleEngine(DefaultRuleSet()).Substitute(ctx, "# A")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Substitute() error = %v, want context.Canceled", err)
	}
	if got != "# A" {
		t.Errorf("Substitute() = %q, want input unchanged", got)
	}
}
