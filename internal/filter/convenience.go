package filter

import "time"

// ByTags builds a filter matching items carrying any of the given tags.
func ByTags(tags []string) Filter {
	return NewBuilder().Where(PropertyTags).IncludesAny(tags).Build()
}

// ByFolders builds a filter matching items filed under any of the given folders.
func ByFolders(folders []string) Filter {
	return NewBuilder().Where(PropertyFolders).IncludesAny(folders).Build()
}

// ByNameRegex builds a filter matching items whose name matches pattern
// (case-insensitively, per the evaluator's fixed behavior).
func ByNameRegex(pattern string) Filter {
	return NewBuilder().Where(PropertyName).Matches(pattern).Build()
}

// ByExtension builds a filter matching an exact extension, stripping a
// leading "." if present so both ".png" and "png" behave identically.
func ByExtension(ext string) Filter {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	return NewBuilder().Where(PropertyExt).Is(ext).Build()
}

// ByMinRating builds a filter matching items with star >= min.
func ByMinRating(min int) Filter {
	return NewBuilder().Where(PropertyStar).GTE(min).Build()
}

// Untagged builds a filter matching items with no tags.
func Untagged() Filter {
	return NewBuilder().Where(PropertyTags).IsEmpty().Build()
}

// Unfiled builds a filter matching items with no folder memberships.
func Unfiled() Filter {
	return NewBuilder().Where(PropertyFolders).IsEmpty().Build()
}

// ByImportDateRange builds a filter matching items imported within
// [from, to] inclusive. from/to may be an epoch-ms int64 or a time.Time;
// both are normalized to epoch-ms before being stored as a between pair.
func ByImportDateRange(from, to interface{}) Filter {
	return NewBuilder().Where(PropertyImportedAt).Between(toEpochMs(from), toEpochMs(to)).Build()
}

func toEpochMs(v interface{}) int64 {
	switch t := v.(type) {
	case time.Time:
		return t.UnixMilli()
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	default:
		return 0
	}
}

// And AND-combines multiple filters by flattening their conditions
// sequences and setting the top-level match to ALL.
func And(filters ...Filter) Filter {
	return combineFilters(MatchAll, filters)
}

// Or OR-combines multiple filters by flattening their conditions sequences
// and setting the top-level match to ANY.
func Or(filters ...Filter) Filter {
	return combineFilters(MatchAny, filters)
}

func combineFilters(mode MatchMode, filters []Filter) Filter {
	out := Filter{Match: mode}
	for _, f := range filters {
		for _, c := range f.Conditions {
			out.Conditions = append(out.Conditions, c.clone())
		}
	}
	return out
}
