// Package query implements Q, the selection grammar nodes are filtered
// through after a parse finishes (spec §4.6): "*" for everything, a
// "prefix.*" wildcard for a subtree with its prefix stripped, or an exact
// dotted path for a single node with its parent prefix stripped.
package query

import "github.com/vrtulka23/dpml/internal/node"

// Run applies q against nodes, copying matches rather than mutating the
// input slice.
func Run(nodes []node.Node, q string) []node.Node {
	if q == "*" {
		out := make([]node.Node, len(nodes))
		copy(out, nodes)
		return out
	}

	if rest, ok := cutWildcard(q); ok {
		var out []node.Node
		for _, n := range nodes {
			if hasPrefix(n.Name, rest) {
				m := n
				m.Name = n.Name[len(rest):]
				out = append(out, m)
			}
		}
		return out
	}

	for _, n := range nodes {
		if n.Name == q {
			m := n
			m.Name = lastSegment(q)
			return []node.Node{m}
		}
	}
	return nil
}

// cutWildcard reports whether q has the form "prefix.*" and, if so, returns
// "prefix." (the literal text that precedes each matching descendant's
// remaining path).
func cutWildcard(q string) (string, bool) {
	if len(q) < 2 || q[len(q)-1] != '*' {
		return "", false
	}
	prefix := q[:len(q)-1]
	if len(prefix) == 0 || prefix[len(prefix)-1] != '.' {
		return "", false
	}
	return prefix, true
}

func hasPrefix(name, prefix string) bool {
	return len(name) > len(prefix) && name[:len(prefix)] == prefix
}

func lastSegment(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}
	return s
}
