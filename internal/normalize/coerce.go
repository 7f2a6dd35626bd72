package normalize

// Total coercion helpers: extract a typed value from a decoded payload, or a
// zero value when the shape does not conform. Field lookups go through pick so
// snake_case and camelCase spellings are interchangeable everywhere.

// pick returns the first present key from names in m.
func pick(m map[string]any, names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := m[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asNumber accepts float64 (the JSON decoder's number type) and int for
// payloads built in-process.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asStringArray keeps only the string elements of a list value. A non-list
// yields an empty (non-nil) slice so callers can serialize it as [].
func asStringArray(v any) []string {
	items := asSlice(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func field(m map[string]any, names ...string) any {
	v, _ := pick(m, names...)
	return v
}

func stringField(m map[string]any, names ...string) string {
	return asString(field(m, names...))
}

func numberField(m map[string]any, names ...string) float64 {
	return asNumber(field(m, names...))
}

func boolField(m map[string]any, names ...string) bool {
	return asBool(field(m, names...))
}

func stringArrayField(m map[string]any, names ...string) []string {
	return asStringArray(field(m, names...))
}
