package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Field is a scalar value of a form. A field with options is a branch selector.
type Field struct {
	Name     string   `json:"name" yaml:"name"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
	Default  string   `json:"default,omitempty" yaml:"default,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

// Unset reports whether value leaves the field at its default or empty value.
func (f Field) Unset(value string) bool {
	return value == "" || (f.Default != "" && value == f.Default)
}

// Option is one checkbox of a multi-select classification group.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Item is a single scored checklist item.
type Item struct {
	Key     string      `json:"key" yaml:"key"`
	Label   string      `json:"label,omitempty" yaml:"label,omitempty"`
	Rule    *Rule       `json:"rule,omitempty" yaml:"rule,omitempty"`
	Hidden  ResetPolicy `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	AllowNA bool        `json:"allow_na,omitempty" yaml:"allow_na,omitempty"` // assessor may answer na
}

// Choice is a multi-select classification group (a set of checkboxes).
type Choice struct {
	Key     string      `json:"key" yaml:"key"`
	Label   string      `json:"label,omitempty" yaml:"label,omitempty"`
	Rule    *Rule       `json:"rule,omitempty" yaml:"rule,omitempty"`
	Hidden  ResetPolicy `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	AllowNA bool        `json:"allow_na,omitempty" yaml:"allow_na,omitempty"`
	Options []Option    `json:"options" yaml:"options"`
}

// HasOption reports whether the choice declares the option key.
func (c Choice) HasOption(key string) bool {
	return slices.ContainsFunc(c.Options, func(o Option) bool { return o.Key == key })
}

// Group is a nested subgroup of a section.
type Group struct {
	Name    string      `json:"name" yaml:"name"`
	Label   string      `json:"label,omitempty" yaml:"label,omitempty"`
	Rule    *Rule       `json:"rule,omitempty" yaml:"rule,omitempty"`
	Hidden  ResetPolicy `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Items   []Item      `json:"items,omitempty" yaml:"items,omitempty"`
	Choices []Choice    `json:"choices,omitempty" yaml:"choices,omitempty"`
	Groups  []Group     `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Section is a named group of checklist items scored together.
type Section struct {
	Name     string      `json:"name" yaml:"name"`
	Label    string      `json:"label,omitempty" yaml:"label,omitempty"`
	Rule     *Rule       `json:"rule,omitempty" yaml:"rule,omitempty"`
	Hidden   ResetPolicy `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Unscored bool        `json:"unscored,omitempty" yaml:"unscored,omitempty"`
	Items    []Item      `json:"items,omitempty" yaml:"items,omitempty"`
	Choices  []Choice    `json:"choices,omitempty" yaml:"choices,omitempty"`
	Groups   []Group     `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Checklist is the static definition of one assessment form.
type Checklist struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Fields   []Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// ElementKind distinguishes items from choice groups.
type ElementKind string

// All element kinds supported.
const (
	ItemElement   ElementKind = "item"
	ChoiceElement ElementKind = "choice"
)

// Element is a flattened, addressable item or choice group together with every rule gating it.
type Element struct {
	Kind     ElementKind
	Section  string
	Key      string
	Path     []string // group names from the section down to the element
	Rules    []*Rule  // section rule, ancestor group rules, own rule (nils omitted)
	Policy   ResetPolicy
	AllowNA  bool
	Unscored bool
	Choice   *Choice // set for choice elements
}

// Ref returns the address of the element.
func (e Element) Ref() Ref { return Ref{Section: e.Section, Key: e.Key} }

// FieldByName returns the scalar field definition.
func (c *Checklist) FieldByName(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SectionByName returns the section definition.
func (c *Checklist) SectionByName(name string) (*Section, bool) {
	for i := range c.Sections {
		if c.Sections[i].Name == name {
			return &c.Sections[i], true
		}
	}
	return nil, false
}

// Elements flattens every item and choice group of the checklist in declaration order.
func (c *Checklist) Elements() []Element {
	var out []Element
	for i := range c.Sections {
		s := &c.Sections[i]
		scope := elementScope{
			section:  s.Name,
			rules:    appendRule(nil, s.Rule),
			policy:   inheritPolicy(ResetNA, s.Hidden),
			unscored: s.Unscored,
		}
		out = scope.collect(out, s.Items, s.Choices, s.Groups)
	}
	return out
}

// elementScope carries the inherited gating of a section or group while flattening.
type elementScope struct {
	section  string
	path     []string
	rules    []*Rule
	policy   ResetPolicy
	unscored bool
}

func (sc elementScope) collect(out []Element, items []Item, choices []Choice, groups []Group) []Element {
	for _, it := range items {
		out = append(out, Element{
			Kind:     ItemElement,
			Section:  sc.section,
			Key:      it.Key,
			Path:     slices.Clone(sc.path),
			Rules:    appendRule(sc.rules, it.Rule),
			Policy:   inheritPolicy(sc.policy, it.Hidden),
			AllowNA:  it.AllowNA,
			Unscored: sc.unscored,
		})
	}
	for i := range choices {
		ch := &choices[i]
		out = append(out, Element{
			Kind:     ChoiceElement,
			Section:  sc.section,
			Key:      ch.Key,
			Path:     slices.Clone(sc.path),
			Rules:    appendRule(sc.rules, ch.Rule),
			Policy:   inheritPolicy(sc.policy, ch.Hidden),
			AllowNA:  ch.AllowNA,
			Unscored: true,
			Choice:   ch,
		})
	}
	for _, g := range groups {
		child := elementScope{
			section:  sc.section,
			path:     append(slices.Clone(sc.path), g.Name),
			rules:    appendRule(sc.rules, g.Rule),
			policy:   inheritPolicy(sc.policy, g.Hidden),
			unscored: sc.unscored,
		}
		out = child.collect(out, g.Items, g.Choices, g.Groups)
	}
	return out
}

func appendRule(rules []*Rule, r *Rule) []*Rule {
	out := slices.Clone(rules)
	if r != nil {
		out = append(out, r)
	}
	return out
}

func inheritPolicy(parent, own ResetPolicy) ResetPolicy {
	if own != "" {
		return own
	}
	return parent
}

// Validate checks names, keys, policies and rule references of the checklist.
func (c *Checklist) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("checklist id is required")
	}
	if len(c.Sections) == 0 {
		return fmt.Errorf("checklist %s must define at least one section", c.ID)
	}

	fields := make(map[string]Field, len(c.Fields))
	for _, f := range c.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("checklist %s has a field without a name", c.ID)
		}
		if _, dup := fields[f.Name]; dup {
			return fmt.Errorf("checklist %s declares field %s twice", c.ID, f.Name)
		}
		if f.Default != "" && len(f.Options) > 0 && !slices.Contains(f.Options, f.Default) {
			return fmt.Errorf("field %s default %q is not one of its options", f.Name, f.Default)
		}
		fields[f.Name] = f
	}

	sections := make(map[string]struct{}, len(c.Sections))
	for _, s := range c.Sections {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("checklist %s has a section without a name", c.ID)
		}
		if _, dup := sections[s.Name]; dup {
			return fmt.Errorf("checklist %s declares section %s twice", c.ID, s.Name)
		}
		sections[s.Name] = struct{}{}
	}

	elements := c.Elements()
	known := make(map[Ref]ElementKind, len(elements))
	for _, e := range elements {
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("section %s has an element without a key", e.Section)
		}
		if _, dup := known[e.Ref()]; dup {
			return fmt.Errorf("section %s declares key %s twice", e.Section, e.Key)
		}
		if _, ok := ValidResetPolicies[e.Policy]; !ok {
			return fmt.Errorf("invalid hidden policy '%s' on %s. must be na or clear", e.Policy, e.Ref())
		}
		if e.Kind == ChoiceElement && len(e.Choice.Options) == 0 {
			return fmt.Errorf("choice %s must declare at least one option", e.Ref())
		}
		known[e.Ref()] = e.Kind
	}

	for _, e := range elements {
		for _, r := range e.Rules {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("rule on %s: %w", e.Ref(), err)
			}
			for _, ref := range r.Refs() {
				if ref.IsField() {
					if _, ok := fields[ref.Key]; !ok {
						return fmt.Errorf("rule on %s references unknown field %s", e.Ref(), ref.Key)
					}
					continue
				}
				if _, ok := known[ref]; !ok {
					return fmt.Errorf("rule on %s references unknown item %s", e.Ref(), ref)
				}
			}
		}
	}
	return nil
}
