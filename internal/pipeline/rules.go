package pipeline

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for rule set construction.
var (
	ErrEmptyRuleSet = errors.New("rule set must contain at least one rule")
	ErrNilPattern   = errors.New("rule pattern cannot be nil")
	ErrRuleKind     = errors.New("rule kind not allowed in a substitution rule set")
)

// Kind tells the engine how a rule is used.
type Kind int

const (
	// Substitution rules replace every match in the working text.
	Substitution Kind = iota
	// TitleExtraction rules capture a title from the source and remove it.
	// They run as a separate pre-pass and never belong to a RuleSet.
	TitleExtraction
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Substitution:
		return "substitution"
	case TitleExtraction:
		return "title-extraction"
	default:
		return "unknown"
	}
}

// Rule pairs a compiled pattern with its replacement template.
// The replacement uses regexp.Expand syntax (${1}, ${2}).
type Rule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
	kind        Kind
}

// NewRule creates a rule. Returns ErrNilPattern if pattern is nil.
func NewRule(name string, pattern *regexp.Regexp, replacement string, kind Kind) (Rule, error) {
	if pattern == nil {
		return Rule{}, fmt.Errorf("%w: %s", ErrNilPattern, name)
	}
	return Rule{name: name, pattern: pattern, replacement: replacement, kind: kind}, nil
}

// mustRule compiles expr and panics on failure. Only used for built-in rules.
func mustRule(name, expr, replacement string, kind Kind) Rule {
	r, err := NewRule(name, regexp.MustCompile(expr), replacement, kind)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the rule name.
func (r Rule) Name() string { return r.name }

// Pattern returns the source text of the rule's pattern.
func (r Rule) Pattern() string { return r.pattern.String() }

// Replacement returns the replacement template.
func (r Rule) Replacement() string { return r.replacement }

// Kind returns the rule kind.
func (r Rule) Kind() Kind { return r.kind }

// apply replaces every match of the rule in text.
func (r Rule) apply(text string) string {
	return r.pattern.ReplaceAllString(text, r.replacement)
}

// RuleSet is a fixed, ordered sequence of substitution rules.
// It cannot be modified after construction and is safe for concurrent use.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a rule set from rules, preserving their order.
// Rejects empty sets and rules that are not Substitution rules.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyRuleSet
	}
	for _, r := range rules {
		if r.pattern == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilPattern, r.name)
		}
		if r.kind != Substitution {
			return nil, fmt.Errorf("%w: %s is %s", ErrRuleKind, r.name, r.kind)
		}
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &RuleSet{rules: owned}, nil
}

// Len returns the number of rules.
func (s *RuleSet) Len() int { return len(s.rules) }

// Rules returns a copy of the rules in application order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Built-in rule names, in application order.
const (
	RuleH1     = "h1"
	RuleH2     = "h2"
	RuleH3     = "h3"
	RuleH4     = "h4"
	RuleStrong = "strong"
	RuleEm     = "em"
	RuleBreak  = "br"
)

// DefaultRuleSet returns the built-in rule sequence.
//
// Heading rules need exactly N hashes followed by whitespace, so "## X" never
// matches the h1 rule. The emphasis rules consume the character before the
// opening marker and put it back. Emphasis at the very start of the document
// has no such character and is never recognized; on later lines the preceding
// newline fills that role.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(
		mustRule(RuleH1, `(?m)^#\s(.*)`, "<h1>${1}</h1>", Substitution),
		mustRule(RuleH2, `(?m)^#{2}\s(.*)`, "<h2>${1}</h2>", Substitution),
		mustRule(RuleH3, `(?m)^#{3}\s(.*)`, "<h3>${1}</h3>", Substitution),
		mustRule(RuleH4, `(?m)^#{4}\s(.*)`, "<h4>${1}</h4>", Substitution),
		mustRule(RuleStrong, `(?m)([^\\])\*\*(.+)\*\*`, "${1}<strong>${2}</strong>", Substitution),
		mustRule(RuleEm, `(?m)([^\\*+])\*(.+)\*`, "${1}<em>${2}</em>", Substitution),
		mustRule(RuleBreak, `(?m)^$`, "<br />", Substitution),
	)
	if err != nil {
		panic(err)
	}
	return rs
}
