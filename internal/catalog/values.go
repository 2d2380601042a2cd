package catalog

// EqualValues compares two selection values. Selections travel through JSON
// (drafts, share links, the HTTP API), which turns every number into a
// float64, so numeric values are compared numerically regardless of the
// concrete Go type they arrived in.
func EqualValues(a, b any) bool {
	fa, aNum := asFloat(a)
	fb, bNum := asFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	return a == b
}

// Selected reports whether a selection value counts as an actual choice.
// A missing entry, nil, false toggle, empty string or zero number all mean
// "nothing selected" for dependency and pricing purposes.
func Selected(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case bool:
		return s
	case string:
		return s != ""
	}
	if f, ok := asFloat(v); ok {
		return f != 0
	}
	return true
}

func asFloat(v any) (float64, bool) {
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
	}
	return 0, false
}
