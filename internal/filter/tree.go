// Package filter implements the Filter Engine (spec.md §4.B): a
// declarative, JSON-serializable predicate tree over item snapshots, with
// a fluent builder and a pure evaluator.
package filter

// MatchMode is the logical combinator applied over a sequence of
// conditions (top-level) or rules (within a condition).
type MatchMode string

const (
	MatchAll MatchMode = "AND"
	MatchAny MatchMode = "OR"
)

// Property is the closed set of item-snapshot fields a rule may target.
type Property string

const (
	PropertyID         Property = "id"
	PropertyName        Property = "name"
	PropertyExt         Property = "ext"
	PropertyURL         Property = "url"
	PropertyAnnotation Property = "annotation"
	PropertyTags        Property = "tags"
	PropertyFolders    Property = "folders"
	PropertyStar        Property = "star"
	PropertyWidth       Property = "width"
	PropertyHeight      Property = "height"
	PropertySize        Property = "size"
	PropertyImportedAt Property = "importedAt"
	PropertyModifiedAt Property = "modifiedAt"
	PropertyIsDeleted  Property = "isDeleted"
)

// Method is the closed set of rule comparators.
type Method string

const (
	MethodIs           Method = "is"
	MethodIsNot        Method = "isNot"
	MethodContains     Method = "contains"
	MethodNotContains  Method = "notContains"
	MethodStartsWith   Method = "startsWith"
	MethodEndsWith     Method = "endsWith"
	MethodMatches      Method = "matches"
	MethodGT           Method = "gt"
	MethodGTE          Method = "gte"
	MethodLT           Method = "lt"
	MethodLTE          Method = "lte"
	MethodBetween      Method = "between"
	MethodIncludesAny  Method = "includesAny"
	MethodIncludesAll  Method = "includesAll"
	MethodExcludesAny  Method = "excludesAny"
	MethodExcludesAll  Method = "excludesAll"
	MethodIsEmpty      Method = "isEmpty"
	MethodIsNotEmpty   Method = "isNotEmpty"
)

// Rule is a single (property, method, value?) predicate.
type Rule struct {
	Property Property    `json:"property"`
	Method   Method      `json:"method"`
	Value    interface{} `json:"value,omitempty"`
}

// Condition is a match mode over an ordered sequence of rules. An empty
// Rules sequence matches every snapshot.
type Condition struct {
	Rules []Rule    `json:"rules"`
	Match MatchMode `json:"match"`
}

// Filter is the top-level predicate tree: a match mode over an ordered
// sequence of conditions. An empty Conditions sequence matches everything.
type Filter struct {
	Conditions []Condition `json:"conditions"`
	Match       MatchMode   `json:"match"`
}

// Clone returns a deep copy, so a Filter value returned by Build() never
// structurally shares storage with a Builder that keeps mutating.
func (f Filter) Clone() Filter {
	out := Filter{Match: f.Match}
	if f.Conditions == nil {
		return out
	}
	out.Conditions = make([]Condition, len(f.Conditions))
	for i, c := range f.Conditions {
		out.Conditions[i] = c.clone()
	}
	return out
}

func (c Condition) clone() Condition {
	out := Condition{Match: c.Match}
	if c.Rules == nil {
		return out
	}
	out.Rules = make([]Rule, len(c.Rules))
	copy(out.Rules, c.Rules)
	return out
}
