package validation

// Typed accessors for the free-form configuration maps attached to triggers
// and steps. Documents arrive either freshly decoded from JSON (numbers are
// float64) or built in Go (numbers are int), so integer accessors accept
// both representations.

// getString returns the value at key. present reports whether the key
// exists at all; isString whether the value is a string.
func getString(config map[string]any, key string) (value string, present, isString bool) {
	raw, exists := config[key]
	if !exists {
		return "", false, false
	}

	s, ok := raw.(string)

	return s, true, ok
}

// getInt returns the value at key as an int. Fractional float64 values are
// rejected: 1.5 is not an acceptable delay_value.
func getInt(config map[string]any, key string) (value int, present, isInt bool) {
	raw, exists := config[key]
	if !exists {
		return 0, false, false
	}

	switch v := raw.(type) {
	case int:
		return v, true, true
	case int32:
		return int(v), true, true
	case int64:
		return int(v), true, true
	case float64:
		if v != float64(int(v)) {
			return 0, true, false
		}

		return int(v), true, true
	default:
		return 0, true, false
	}
}

// getBool returns the value at key as a bool.
func getBool(config map[string]any, key string) (value bool, present, isBool bool) {
	raw, exists := config[key]
	if !exists {
		return false, false, false
	}

	b, ok := raw.(bool)

	return b, true, ok
}

// getList returns the value at key as a slice.
func getList(config map[string]any, key string) (value []any, present, isList bool) {
	raw, exists := config[key]
	if !exists {
		return nil, false, false
	}

	l, ok := raw.([]any)
	if ok {
		return l, true, true
	}

	// Documents built in Go often carry []string directly.
	if strs, ok := raw.([]string); ok {
		converted := make([]any, len(strs))
		for i, s := range strs {
			converted[i] = s
		}

		return converted, true, true
	}

	return nil, true, false
}

// getStringList returns the value at key as a list of strings. allStrings
// is false when the list contains a non-string entry.
func getStringList(config map[string]any, key string) (value []string, present, allStrings bool) {
	list, exists, isList := getList(config, key)
	if !exists || !isList {
		return nil, exists, false
	}

	strs := make([]string, 0, len(list))

	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, true, false
		}

		strs = append(strs, s)
	}

	return strs, true, true
}

// getMap returns the value at key as a map.
func getMap(config map[string]any, key string) (value map[string]any, present, isMap bool) {
	raw, exists := config[key]
	if !exists {
		return nil, false, false
	}

	m, ok := raw.(map[string]any)

	return m, true, ok
}

// oneOf reports whether candidate is among the allowed values.
func oneOf(candidate string, allowed ...string) bool {
	for _, a := range allowed {
		if candidate == a {
			return true
		}
	}

	return false
}
