package filter

import "regexp"

// Builder accumulates conditions and rules through a chained interface.
// It is a two-state machine (see spec.md §9 "Fluent builder with terminal
// transitions"): the Builder itself is the "between rules" surface
// (Where/And/Or/AddCondition/SetMatch/Build); each terminator on the
// RuleBuilder it returns transitions back to this surface.
type Builder struct {
	filter  Filter
	current int // index of the condition currently being appended to, -1 if none
}

// NewBuilder starts a new, empty builder (top-level match defaults to ALL).
func NewBuilder() *Builder {
	return &Builder{filter: Filter{Match: MatchAll}, current: -1}
}

// Where starts a new condition (match=ALL) and returns a continuation
// awaiting the first rule's terminator method.
func (b *Builder) Where(property Property) *RuleBuilder {
	return b.startCondition(property)
}

// And appends an additional rule to the current condition with ALL
// semantics. If no current condition exists, it behaves as Where.
func (b *Builder) And(property Property) *RuleBuilder {
	if b.current < 0 {
		return b.startCondition(property)
	}
	return &RuleBuilder{b: b, conditionIdx: b.current, property: property}
}

// Or starts a new condition (appended to the conditions sequence) and
// additionally sets the top-level match mode to ANY.
func (b *Builder) Or(property Property) *RuleBuilder {
	rb := b.startCondition(property)
	b.filter.Match = MatchAny
	return rb
}

// AddCondition directly appends a pre-built condition and returns the
// builder surface.
func (b *Builder) AddCondition(condition Condition) *Builder {
	b.filter.Conditions = append(b.filter.Conditions, condition.clone())
	b.current = len(b.filter.Conditions) - 1
	return b
}

// SetMatch directly sets the top-level match mode.
func (b *Builder) SetMatch(mode MatchMode) *Builder {
	b.filter.Match = mode
	return b
}

// Build returns the accumulated filter tree as a value, deep-copied so
// further builder mutation never affects a previously built Filter.
func (b *Builder) Build() Filter {
	return b.filter.Clone()
}

func (b *Builder) startCondition(property Property) *RuleBuilder {
	b.filter.Conditions = append(b.filter.Conditions, Condition{Match: MatchAll})
	b.current = len(b.filter.Conditions) - 1
	return &RuleBuilder{b: b, conditionIdx: b.current, property: property}
}

// RuleBuilder is the "awaiting terminator" surface: it carries the
// in-progress rule's property and exposes one method per comparator. Every
// terminator appends the finished rule and returns to the Builder surface.
type RuleBuilder struct {
	b            *Builder
	conditionIdx int
	property     Property
}

func (rb *RuleBuilder) term(method Method, value interface{}) *Builder {
	rule := Rule{Property: rb.property, Method: method, Value: value}
	cond := &rb.b.filter.Conditions[rb.conditionIdx]
	cond.Rules = append(cond.Rules, rule)
	return rb.b
}

func (rb *RuleBuilder) Is(value interface{}) *Builder    { return rb.term(MethodIs, value) }
func (rb *RuleBuilder) IsNot(value interface{}) *Builder { return rb.term(MethodIsNot, value) }

func (rb *RuleBuilder) Contains(value string) *Builder    { return rb.term(MethodContains, value) }
func (rb *RuleBuilder) NotContains(value string) *Builder { return rb.term(MethodNotContains, value) }
func (rb *RuleBuilder) StartsWith(value string) *Builder  { return rb.term(MethodStartsWith, value) }
func (rb *RuleBuilder) EndsWith(value string) *Builder    { return rb.term(MethodEndsWith, value) }

// Matches accepts either a compiled regex or a pattern string; the compiled
// regex is stored by its source pattern. Matching is always case-insensitive
// at evaluation time, regardless of any flags on a supplied *regexp.Regexp.
func (rb *RuleBuilder) Matches(pattern interface{}) *Builder {
	switch p := pattern.(type) {
	case *regexp.Regexp:
		return rb.term(MethodMatches, p.String())
	case string:
		return rb.term(MethodMatches, p)
	default:
		return rb.term(MethodMatches, "")
	}
}

func (rb *RuleBuilder) GT(value interface{}) *Builder  { return rb.term(MethodGT, value) }
func (rb *RuleBuilder) GTE(value interface{}) *Builder { return rb.term(MethodGTE, value) }
func (rb *RuleBuilder) LT(value interface{}) *Builder  { return rb.term(MethodLT, value) }
func (rb *RuleBuilder) LTE(value interface{}) *Builder { return rb.term(MethodLTE, value) }

// Between stores [min, max] as a two-element ordered pair.
func (rb *RuleBuilder) Between(min, max interface{}) *Builder {
	return rb.term(MethodBetween, []interface{}{min, max})
}

func (rb *RuleBuilder) IncludesAny(values []string) *Builder {
	return rb.term(MethodIncludesAny, values)
}
func (rb *RuleBuilder) IncludesAll(values []string) *Builder {
	return rb.term(MethodIncludesAll, values)
}
func (rb *RuleBuilder) ExcludesAny(values []string) *Builder {
	return rb.term(MethodExcludesAny, values)
}
func (rb *RuleBuilder) ExcludesAll(values []string) *Builder {
	return rb.term(MethodExcludesAll, values)
}

func (rb *RuleBuilder) IsEmpty() *Builder    { return rb.term(MethodIsEmpty, nil) }
func (rb *RuleBuilder) IsNotEmpty() *Builder { return rb.term(MethodIsNotEmpty, nil) }
