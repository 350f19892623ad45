package schema

import (
	"fmt"
	"strings"
)

// Rule is a node of a relevance expression tree.
// Leaf kinds (eq, neq, in, answered) reference a scalar field by Field, or an item answer
// when Section is also set. Branch kinds (all, any, not) combine Rules.
type Rule struct {
	Kind    RuleKind `json:"kind" yaml:"kind"`
	Section string   `json:"section,omitempty" yaml:"section,omitempty"`
	Field   string   `json:"field,omitempty" yaml:"field,omitempty"`
	Value   string   `json:"value,omitempty" yaml:"value,omitempty"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	Rules   []*Rule  `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Ref identifies a value a rule can read: an item answer, a choice group or a scalar field.
type Ref struct {
	Section string
	Key     string
}

// IsField reports whether the ref points at a scalar field.
func (r Ref) IsField() bool { return r.Section == "" }

// String renders the ref as "section.key" or just "key" for scalar fields.
func (r Ref) String() string {
	if r.IsField() {
		return r.Key
	}
	return r.Section + "." + r.Key
}

// Eq matches a scalar field against a value.
func Eq(field, value string) *Rule {
	return &Rule{Kind: RuleEq, Field: field, Value: value}
}

// Neq matches when a scalar field differs from a value.
func Neq(field, value string) *Rule {
	return &Rule{Kind: RuleNeq, Field: field, Value: value}
}

// In matches a scalar field against any of the values.
func In(field string, values ...string) *Rule {
	return &Rule{Kind: RuleIn, Field: field, Values: values}
}

// AnswerEq matches an item answer against a value.
func AnswerEq(section, key string, value Answer) *Rule {
	return &Rule{Kind: RuleEq, Section: section, Field: key, Value: string(value)}
}

// AnswerIn matches an item answer against any of the values.
func AnswerIn(section, key string, values ...Answer) *Rule {
	vs := make([]string, len(values))
	for i, v := range values {
		vs[i] = string(v)
	}
	return &Rule{Kind: RuleIn, Section: section, Field: key, Values: vs}
}

// Checked matches when an option of a multi-select group is checked.
func Checked(section, key, option string) *Rule {
	return &Rule{Kind: RuleEq, Section: section, Field: key, Value: option}
}

// Answered matches when an item holds yes, partial or no.
func Answered(section, key string) *Rule {
	return &Rule{Kind: RuleAnswered, Section: section, Field: key}
}

// All is the conjunction of rules.
func All(rules ...*Rule) *Rule {
	return &Rule{Kind: RuleAll, Rules: rules}
}

// Any is the disjunction of rules.
func Any(rules ...*Rule) *Rule {
	return &Rule{Kind: RuleAny, Rules: rules}
}

// Not negates a rule.
func Not(rule *Rule) *Rule {
	return &Rule{Kind: RuleNot, Rules: []*Rule{rule}}
}

// Refs returns every value the rule reads, in depth-first order.
func (r *Rule) Refs() []Ref {
	if r == nil {
		return nil
	}
	var refs []Ref
	switch r.Kind {
	case RuleAll, RuleAny, RuleNot:
		for _, child := range r.Rules {
			refs = append(refs, child.Refs()...)
		}
	default:
		refs = append(refs, Ref{Section: r.Section, Key: r.Field})
	}
	return refs
}

// Validate checks the structure of the rule tree.
func (r *Rule) Validate() error {
	if r == nil {
		return nil
	}
	if _, ok := ValidRuleKinds[r.Kind]; !ok {
		return fmt.Errorf("invalid rule kind '%s'. must be eq, neq, in, answered, all, any, not", r.Kind)
	}
	switch r.Kind {
	case RuleAll, RuleAny:
		for i, child := range r.Rules {
			if child == nil {
				return fmt.Errorf("%s rule has nil child at %d", r.Kind, i)
			}
			if err := child.Validate(); err != nil {
				return err
			}
		}
	case RuleNot:
		if len(r.Rules) != 1 || r.Rules[0] == nil {
			return fmt.Errorf("not rule must have exactly one child (received %d)", len(r.Rules))
		}
		return r.Rules[0].Validate()
	default:
		if strings.TrimSpace(r.Field) == "" {
			return fmt.Errorf("%s rule must reference a field", r.Kind)
		}
		if r.Kind == RuleIn && len(r.Values) == 0 {
			return fmt.Errorf("in rule on %s must list at least one value", Ref{Section: r.Section, Key: r.Field})
		}
	}
	return nil
}

// String renders the rule in a compact, human-readable form.
func (r *Rule) String() string {
	if r == nil {
		return "always"
	}
	ref := Ref{Section: r.Section, Key: r.Field}
	switch r.Kind {
	case RuleEq:
		return fmt.Sprintf("%s=%s", ref, r.Value)
	case RuleNeq:
		return fmt.Sprintf("%s!=%s", ref, r.Value)
	case RuleIn:
		return fmt.Sprintf("%s in [%s]", ref, strings.Join(r.Values, ","))
	case RuleAnswered:
		return fmt.Sprintf("answered(%s)", ref)
	case RuleNot:
		if len(r.Rules) == 1 {
			return "not(" + r.Rules[0].String() + ")"
		}
		return "not(?)"
	case RuleAll, RuleAny:
		parts := make([]string, len(r.Rules))
		for i, child := range r.Rules {
			parts[i] = child.String()
		}
		sep := " and "
		if r.Kind == RuleAny {
			sep = " or "
		}
		return "(" + strings.Join(parts, sep) + ")"
	default:
		return string(r.Kind)
	}
}
