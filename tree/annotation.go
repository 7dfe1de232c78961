package tree

import (
	"fmt"
	"strings"
)

// A Converter turns the raw string value of one annotation key into a typed
// value.
type Converter func(value string) (interface{}, error)

// ParseComment extracts key/value pairs from a BEAST-style comment of the
// form "[&mean=0.2,hpd={0.1,0.6}]". Commas nested inside '{}' or '[]' stay
// part of the value. Keys listed in converters have their value converted;
// all other values are kept as strings.
//
// Comments that do not carry a "&...]" payload yield a nil map and no error.
func ParseComment(comment string, converters map[string]Converter) (map[string]interface{}, error) {
	start := strings.Index(comment, "&") + 1
	end := strings.LastIndex(comment, "]")
	if start == 0 || end == -1 || end <= start {
		return nil, nil
	}
	content := comment[start:end]

	annotations := make(map[string]interface{})
	for _, token := range splitOutsideBrackets(content) {
		eq := strings.Index(token, "=")
		if eq == -1 {
			continue
		}
		key := strings.TrimSpace(token[:eq])
		value := strings.TrimSpace(token[eq+1:])
		if converter, ok := converters[key]; ok {
			converted, err := converter(value)
			if err != nil {
				return nil, fmt.Errorf("tree: converting annotation %q: %w", key, err)
			}
			annotations[key] = converted
		} else {
			annotations[key] = value
		}
	}
	return annotations, nil
}

// splitOutsideBrackets splits on commas that are not nested inside '{}' or
// '[]' pairs.
func splitOutsideBrackets(s string) []string {
	var result []string
	var buf strings.Builder
	var stack []byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '[', '{':
			stack = append(stack, c)
		case ']', '}':
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if (c == ']' && top == '[') || (c == '}' && top == '{') {
					stack = stack[:len(stack)-1]
				}
			}
		}
		if c == ',' && len(stack) == 0 {
			result = append(result, strings.TrimSpace(buf.String()))
			buf.Reset()
		} else {
			buf.WriteByte(c)
		}
	}
	if buf.Len() > 0 {
		result = append(result, strings.TrimSpace(buf.String()))
	}
	return result
}
