package pipeline

import "context"

// Substituter defines the contract for the substitution stage.
type Substituter interface {
	Substitute(ctx context.Context, text string) (string, error)
}

// RuleEngine applies a RuleSet to text, each rule consuming the output of
// the previous one.
type RuleEngine struct {
	rules *RuleSet
}

// NewRuleEngine creates an engine over rules.
// A nil rule set is replaced by DefaultRuleSet.
func NewRuleEngine(rules *RuleSet) *RuleEngine {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &RuleEngine{rules: rules}
}

// Rules returns the rule set the engine applies.
func (e *RuleEngine) Rules() *RuleSet {
	return e.rules
}

// Substitute runs every rule over text in order.
// Cancellation is checked between rules; on cancellation the text processed
// so far is returned together with the context error.
func (e *RuleEngine) Substitute(ctx context.Context, text string) (string, error) {
	for _, r := range e.rules.rules {
		if err := ctx.Err(); err != nil {
			return text, err
		}
		text = r.apply(text)
	}
	return text, nil
}

// Apply runs every rule of rules over text in order. It performs no I/O and
// its output depends only on text and rule order.
func Apply(text string, rules *RuleSet) string {
	for _, r := range rules.rules {
		text = r.apply(text)
	}
	return text
}
