package filter

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/eaglecooler/core/internal/snapshot"
)

// Evaluate reports whether an item snapshot matches a filter tree. It is
// pure and allocation-bounded per call; any method whose type preconditions
// are not satisfied contributes false rather than erroring, and an unknown
// method yields false.
func Evaluate(item snapshot.ItemSnapshot, f Filter) bool {
	if len(f.Conditions) == 0 {
		return true
	}
	return combine(f.Match, f.Conditions, func(c Condition) bool {
		return evaluateCondition(item, c)
	})
}

func evaluateCondition(item snapshot.ItemSnapshot, c Condition) bool {
	if len(c.Rules) == 0 {
		return true
	}
	return combine(c.Match, c.Rules, func(r Rule) bool {
		return evaluateRule(item, r)
	})
}

// combine applies mode (ALL=conjunction, ANY=disjunction) over a slice of
// T, short-circuiting where it can. Empty conjunction is true; empty
// disjunction is true (the caller already special-cases empty, but this
// stays correct standalone too).
func combine[T any](mode MatchMode, items []T, pred func(T) bool) bool {
	if mode == MatchAny {
		for _, item := range items {
			if pred(item) {
				return true
			}
		}
		return len(items) == 0
	}
	for _, item := range items {
		if !pred(item) {
			return false
		}
	}
	return true
}

func evaluateRule(item snapshot.ItemSnapshot, r Rule) bool {
	v := valueForProperty(item, r.Property)

	switch r.Method {
	case MethodIs:
		return primitiveEqual(v, r.Value)
	case MethodIsNot:
		return !primitiveEqual(v, r.Value)

	case MethodContains:
		s, ok := v.(string)
		return ok && strings.Contains(s, stringify(r.Value))
	case MethodNotContains:
		s, ok := v.(string)
		return ok && !strings.Contains(s, stringify(r.Value))
	case MethodStartsWith:
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, stringify(r.Value))
	case MethodEndsWith:
		s, ok := v.(string)
		return ok && strings.HasSuffix(s, stringify(r.Value))

	case MethodMatches:
		s, ok := v.(string)
		if !ok {
			return false
		}
		pattern, ok := r.Value.(string)
		if !ok {
			return false
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false
		}
		return re.MatchString(s)

	case MethodGT:
		a, b, ok := numericPair(v, r.Value)
		return ok && a > b
	case MethodGTE:
		a, b, ok := numericPair(v, r.Value)
		return ok && a >= b
	case MethodLT:
		a, b, ok := numericPair(v, r.Value)
		return ok && a < b
	case MethodLTE:
		a, b, ok := numericPair(v, r.Value)
		return ok && a <= b

	case MethodBetween:
		n, ok := toFloat64(v)
		if !ok {
			return false
		}
		lo, hi, ok := boundsPair(r.Value)
		return ok && n >= lo && n <= hi

	case MethodIsEmpty:
		return isEmptyValue(v)
	case MethodIsNotEmpty:
		return !isEmptyValue(v)

	case MethodIncludesAny:
		vs, r1ok := asStringSlice(v)
		rs, r2ok := asStringSlice(r.Value)
		if !r1ok || !r2ok {
			return false
		}
		return anyIn(rs, vs)
	case MethodIncludesAll:
		vs, r1ok := asStringSlice(v)
		rs, r2ok := asStringSlice(r.Value)
		if !r1ok || !r2ok {
			return false
		}
		return allIn(rs, vs)
	case MethodExcludesAny:
		vs, r1ok := asStringSlice(v)
		rs, r2ok := asStringSlice(r.Value)
		if !r1ok || !r2ok {
			return false
		}
		return !allIn(rs, vs)
	case MethodExcludesAll:
		vs, r1ok := asStringSlice(v)
		rs, r2ok := asStringSlice(r.Value)
		if !r1ok || !r2ok {
			return false
		}
		return !anyIn(rs, vs)

	default:
		return false
	}
}

// valueForProperty reads the snapshot's value at the rule's property.
// Absent star is surfaced as nil so isEmpty/isNotEmpty behave sensibly;
// every other numeric comparator then legitimately fails its type
// precondition against nil.
func valueForProperty(item snapshot.ItemSnapshot, p Property) interface{} {
	switch p {
	case PropertyID:
		return item.ID
	case PropertyName:
		return item.Name
	case PropertyExt:
		return item.Ext
	case PropertyURL:
		return item.URL
	case PropertyAnnotation:
		return item.Annotation
	case PropertyTags:
		return item.Tags
	case PropertyFolders:
		return item.Folders
	case PropertyStar:
		if item.Star == snapshot.NoStar {
			return nil
		}
		return item.Star
	case PropertyWidth:
		return item.Width
	case PropertyHeight:
		return item.Height
	case PropertySize:
		return item.Size
	case PropertyImportedAt:
		return item.ImportedAt
	case PropertyModifiedAt:
		return item.ModifiedAt
	case PropertyIsDeleted:
		return item.IsDeleted
	default:
		return nil
	}
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return toString(v)
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	default:
		if n, ok := toFloat64(v); ok {
			return trimFloat(n)
		}
		return ""
	}
}

func trimFloat(n float64) string {
	// Render integral floats without a trailing ".0" so stringified numeric
	// rule values behave like their JS-originated counterparts.
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func primitiveEqual(a, b interface{}) bool {
	an, aok := toFloat64(a)
	bn, bok := toFloat64(b)
	if aok && bok {
		return an == bn
	}
	if aok != bok {
		// One side numeric, the other not: not a valid numeric comparison,
		// so the values are not equal.
		if a == nil && b == nil {
			return true
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func numericPair(v, r interface{}) (float64, float64, bool) {
	a, aok := toFloat64(v)
	b, bok := toFloat64(r)
	if !aok || !bok {
		return 0, 0, false
	}
	return a, b, true
}

func boundsPair(r interface{}) (float64, float64, bool) {
	switch pair := r.(type) {
	case []interface{}:
		if len(pair) != 2 {
			return 0, 0, false
		}
		lo, ok1 := toFloat64(pair[0])
		hi, ok2 := toFloat64(pair[1])
		return lo, hi, ok1 && ok2
	case [2]float64:
		return pair[0], pair[1], true
	default:
		return 0, 0, false
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}

func asStringSlice(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func anyIn(needles, haystack []string) bool {
	for _, n := range needles {
		for _, h := range haystack {
			if n == h {
				return true
			}
		}
	}
	return false
}

func allIn(needles, haystack []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if n == h {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
