package finalenglish

import "strings"

// Table is a translation table: a nested mapping from dot-path segments
// to string leaves or context-keyed string mappings.
type Table map[string]any

// FindTranslation traverses key, split on ".", through the nested table.
// A missing segment or a non-map intermediate node fails the lookup
// rather than erroring. When context is non-empty and the resolved node
// is a mapping containing that context as a key, the context-specific
// value is returned; otherwise the resolved node itself is returned when
// it is a permissible leaf (string or mapping).
func FindTranslation(key, context string, table Table) (any, bool) {
	if table == nil || key == "" {
		return nil, false
	}

	var node any = map[string]any(table)
	for _, seg := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}

	if m, ok := node.(map[string]any); ok {
		if context != "" {
			if v, ok := m[context]; ok {
				return v, true
			}
		}
		return m, true
	}
	if s, ok := node.(string); ok {
		return s, true
	}
	return nil, false
}

// FindString is FindTranslation restricted to string results. Lookups
// resolving to a mapping (no usable context) report absent.
func FindString(key, context string, table Table) (string, bool) {
	v, ok := FindTranslation(key, context, table)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
