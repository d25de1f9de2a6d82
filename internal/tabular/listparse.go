package tabular

import (
	"strconv"
	"strings"
)

// ParseList decodes a cell that may hold a Python-style list literal,
// e.g. "['Judo','Athletics']", returning the trimmed non-empty items.
// Tuple and set notation are accepted as well. Anything that does not
// scan as a literal falls back to comma-splitting the raw text; empty
// input yields no items.
func ParseList(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if items, ok := scanLiteral(trimmed); ok {
		return items
	}
	return splitFallback(trimmed)
}

func scanLiteral(value string) ([]string, bool) {
	open := value[0]
	var close byte
	switch open {
	case '[':
		close = ']'
	case '(':
		close = ')'
	case '{':
		close = '}'
	case '\'', '"':
		item, rest, ok := scanQuoted(value)
		if !ok || strings.TrimSpace(rest) != "" {
			return nil, false
		}
		return appendItem(nil, item), true
	default:
		item, ok := scalarItem(value)
		if !ok {
			return nil, false
		}
		return item, true
	}

	if value[len(value)-1] != close {
		return nil, false
	}
	inner := value[1 : len(value)-1]

	var items []string
	for {
		inner = strings.TrimLeft(inner, " \t")
		if inner == "" {
			return items, true
		}
		var item string
		switch inner[0] {
		case '\'', '"':
			quoted, rest, ok := scanQuoted(inner)
			if !ok {
				return nil, false
			}
			item = quoted
			inner = rest
		default:
			end := strings.IndexByte(inner, ',')
			var token string
			if end < 0 {
				token, inner = inner, ""
			} else {
				token, inner = inner[:end], inner[end:]
			}
			scalar, ok := scalarItem(strings.TrimSpace(token))
			if !ok {
				return nil, false
			}
			items = append(items, scalar...)
			inner = strings.TrimLeft(inner, " \t")
			if inner == "" {
				return items, true
			}
			if inner[0] != ',' {
				return nil, false
			}
			inner = inner[1:]
			continue
		}
		items = appendItem(items, item)
		inner = strings.TrimLeft(inner, " \t")
		if inner == "" {
			return items, true
		}
		if inner[0] != ',' {
			return nil, false
		}
		inner = inner[1:]
	}
}

// scanQuoted consumes a leading quoted string, honoring backslash escapes,
// and returns the unquoted text plus the unconsumed remainder.
func scanQuoted(value string) (string, string, bool) {
	quote := value[0]
	var sb strings.Builder
	for i := 1; i < len(value); i++ {
		c := value[i]
		switch c {
		case '\\':
			if i+1 >= len(value) {
				return "", "", false
			}
			i++
			sb.WriteByte(value[i])
		case quote:
			return sb.String(), value[i+1:], true
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", false
}

// scalarItem maps a bare (unquoted) Python literal token to its items.
// Unknown tokens mark the whole cell malformed.
func scalarItem(token string) ([]string, bool) {
	switch token {
	case "True":
		return []string{"True"}, true
	case "False", "None":
		return nil, true
	}
	if n, err := strconv.ParseFloat(token, 64); err == nil {
		if n == 0 {
			return nil, true
		}
		return []string{token}, true
	}
	return nil, false
}

func appendItem(items []string, item string) []string {
	if trimmed := strings.TrimSpace(item); trimmed != "" {
		return append(items, trimmed)
	}
	return items
}

func splitFallback(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
