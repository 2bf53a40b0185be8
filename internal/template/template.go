// Package template implements T, the template renderer (spec §4.8):
// "{path}" and "{path:format}" tokens are substituted with the resolved
// node's value, formatted per an optional printf-style format spec. A "{"
// with no "}" after it is emitted literally; every "{...}" span is resolved
// as a reference, and one that does not resolve to exactly one node is an
// error rather than literal text.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
)

// Requester resolves a template reference the same way an import does
// (interp.Interpreter.Request satisfies this).
type Requester interface {
	Request(path string, counts []int, pos dpmlerrors.Position) ([]node.Node, error)
}

var formatSuffix = regexp.MustCompile(`:[0-9.]*[sdfeb]+$`)

// Render scans tpl for "{...}" tokens and substitutes each with its
// resolved, formatted value.
func Render(tpl string, r Requester, source string) (string, error) {
	var out strings.Builder
	runes := []rune(tpl)
	line := 1

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\n' {
			line++
		}
		if c != '{' {
			out.WriteRune(c)
			continue
		}

		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '}' {
				end = j
				break
			}
		}
		if end < 0 {
			out.WriteRune(c)
			continue
		}

		inner := string(runes[i+1 : end])
		path, format := splitFormat(inner)

		pos := dpmlerrors.Position{Source: source, Line: line}
		results, err := r.Request(path, []int{1}, pos)
		if err != nil {
			return "", err
		}

		rendered, err := formatValue(results[0].Value, format, pos)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
		i = end
	}

	return out.String(), nil
}

// splitFormat separates a token's body into its path and optional trailing
// ":format" spec (spec §4.8 grammar: ":" then optional width/precision then
// a type specifier in {s,d,f,e,b}).
func splitFormat(inner string) (path, format string) {
	if loc := formatSuffix.FindStringIndex(inner); loc != nil {
		return inner[:loc[0]], inner[loc[0]:]
	}
	return inner, ""
}

// formatValue applies an optional printf-style format spec to a resolved
// value. The grammar's digits/dot/type-letter spec maps directly onto Go's
// fmt verbs (both descend from C's printf), so no translation beyond
// stripping the leading ":" and prefixing "%" is needed.
func formatValue(v node.Value, format string, pos dpmlerrors.Position) (string, error) {
	if format == "" {
		return stringify(v), nil
	}
	verb := "%" + strings.TrimPrefix(format, ":")

	switch v.Kind() {
	case node.ValueInt:
		return fmt.Sprintf(verb, v.IntValue()), nil
	case node.ValueFloat:
		return fmt.Sprintf(verb, v.FloatValue()), nil
	case node.ValueString:
		return fmt.Sprintf(verb, v.StringValue()), nil
	case node.ValueBool:
		return fmt.Sprintf(verb, v.BoolValue()), nil
	default:
		return "", dpmlerrors.Newf(dpmlerrors.InvalidCast, pos,
			"cannot apply format %q to a %s value", format, v.Kind())
	}
}

func stringify(v node.Value) string {
	switch v.Kind() {
	case node.ValueBool:
		if v.BoolValue() {
			return "true"
		}
		return "false"
	case node.ValueInt:
		return strconv.FormatInt(v.IntValue(), 10)
	case node.ValueFloat:
		return strconv.FormatFloat(v.FloatValue(), 'g', -1, 64)
	case node.ValueString:
		return v.StringValue()
	case node.ValueArray:
		parts := make([]string, v.ArrayLen())
		for i := 0; i < v.ArrayLen(); i++ {
			parts[i] = stringify(v.ArrayGet(i))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "null"
	}
}
