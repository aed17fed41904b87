package template

import (
	"fmt"
	"strconv"
	"strings"
)

// parentPrefix steps one binding level up inside {{#each}} blocks.
const parentPrefix = "../"

// writeNodes evaluates nodes against the scope stack and appends the output
// to b. The last scope entry is the current resolution root; each iteration
// pushes the current element.
func writeNodes(b *strings.Builder, nodes []node, scopes []any) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *textNode:
			b.WriteString(n.text)
		case *varNode:
			v, ok := resolvePath(scopes, n.path)
			if !ok || v == nil {
				b.WriteString(n.raw)
				continue
			}
			b.WriteString(formatValue(v))
		case *ifNode:
			v, _ := resolvePath(scopes, n.path)
			if truthy(v) {
				writeNodes(b, n.then, scopes)
			} else {
				writeNodes(b, n.els, scopes)
			}
		case *eachNode:
			v, ok := resolvePath(scopes, n.path)
			if !ok {
				continue
			}
			seq, ok := asSequence(v)
			if !ok {
				continue
			}
			for _, item := range seq {
				writeNodes(b, n.body, append(scopes, item))
			}
		}
	}
}

// resolvePath walks a dot-separated path from the current resolution root.
// Leading ../ prefixes select an enclosing root first. Reports false when any
// step is missing, a non-map value is dereferenced, or more ../ levels are
// requested than exist.
func resolvePath(scopes []any, path string) (any, bool) {
	depth := len(scopes) - 1
	for strings.HasPrefix(path, parentPrefix) {
		path = path[len(parentPrefix):]
		depth--
	}
	if depth < 0 || path == "" {
		return nil, false
	}

	current := scopes[depth]
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return nil, false
		}
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// formatValue renders a resolved value as output text.
// Floats use the shortest exact decimal form, so 12.50 stays 12.5 and whole
// values carry no trailing point.
func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truthy reports whether a resolved value selects the then arm of a
// conditional: defined and non-empty, non-zero, or true.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case map[string]any:
		return len(v) > 0
	default:
		if seq, ok := asSequence(v); ok {
			return len(seq) > 0
		}
		return true
	}
}

// asSequence normalizes iterable values to []any.
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		items := make([]any, len(s))
		for i, m := range s {
			items[i] = m
		}
		return items, true
	case []string:
		items := make([]any, len(s))
		for i, e := range s {
			items[i] = e
		}
		return items, true
	}
	return nil, false
}
