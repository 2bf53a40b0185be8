// Package expr implements DPML's boolean/comparison expression evaluator
// (spec §4.7), used by `@case` conditions and the public `expression()`
// operation. It never imports internal/interp: node lookups go through the
// Resolver interface, which interp implements, keeping the dependency
// one-directional (mirrors the teacher's internal/interp ↔
// internal/interp/evaluator split, wired through an interface rather than a
// direct import).
package expr

import (
	"strconv"
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
	"github.com/vrtulka23/dpml/internal/units"
)

// Resolver looks up a node by import-or-local path and exposes the active
// unit table, the two pieces of interpreter state the evaluator needs.
type Resolver interface {
	ResolveNode(path string) (n node.Node, found bool, err error)
	UnitTable() *units.Table
}

// evalFn is a deferred evaluation of one syntax node. Building the parse
// tree as a tree of closures (rather than evaluating eagerly during
// parsing) is what lets Evaluate implement real short-circuiting for "&&"
// and "||": the right-hand closure is only invoked if the left side didn't
// already decide the result, so a reference that doesn't exist on a
// never-taken branch never raises an error.
type evalFn func() (operand, error)

type operand struct {
	val   node.Value
	units string
	typed bool   // true when val came from a resolved node (explicit declared type)
	raw   string // original literal text, for best-effort re-coercion
}

// Evaluate parses and evaluates text against r.
func Evaluate(text string, r Resolver, pos dpmlerrors.Position) (bool, error) {
	p := &parser{input: []rune(text), resolver: r, pos: pos}
	fn, err := p.parseOr()
	if err != nil {
		return false, err
	}
	p.skipSpace()
	if p.i != len(p.input) {
		return false, dpmlerrors.Newf(dpmlerrors.UnbalancedParen, pos,
			"unexpected trailing input in expression: %q", string(p.input[p.i:]))
	}
	result, err := fn()
	if err != nil {
		return false, err
	}
	if result.val.Kind() != node.ValueBool {
		return false, dpmlerrors.New(dpmlerrors.NonBoolExpression, pos, "expression does not evaluate to a boolean")
	}
	return result.val.BoolValue(), nil
}

type parser struct {
	input    []rune
	i        int
	resolver Resolver
	pos      dpmlerrors.Position
}

func (p *parser) skipSpace() {
	for p.i < len(p.input) && (p.input[p.i] == ' ' || p.input[p.i] == '\t') {
		p.i++
	}
}

func (p *parser) peek() rune {
	if p.i >= len(p.input) {
		return 0
	}
	return p.input[p.i]
}

// hasPrefix reports (without consuming) whether the remaining input, after
// skipping leading whitespace, starts with s.
func (p *parser) hasPrefix(s string) bool {
	p.skipSpace()
	rs := []rune(s)
	if p.i+len(rs) > len(p.input) {
		return false
	}
	for j, r := range rs {
		if p.input[p.i+j] != r {
			return false
		}
	}
	return true
}

func (p *parser) consume(s string) {
	p.skipSpace()
	p.i += len([]rune(s))
}

func (p *parser) parseOr() (evalFn, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.hasPrefix("||") {
		p.consume("||")
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = combineOr(left, right, p.pos)
	}
	return left, nil
}

func (p *parser) parseAnd() (evalFn, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.hasPrefix("&&") {
		p.consume("&&")
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = combineAnd(left, right, p.pos)
	}
	return left, nil
}

func (p *parser) parseUnary() (evalFn, error) {
	if p.hasPrefix("~") {
		p.consume("~")
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		pos := p.pos
		return func() (operand, error) {
			xv, err := x()
			if err != nil {
				return operand{}, err
			}
			if xv.val.Kind() != node.ValueBool {
				return operand{}, dpmlerrors.New(dpmlerrors.NonBoolExpression, pos, "operand of \"~\" is not boolean")
			}
			return operand{val: node.NewBool(!xv.val.BoolValue())}, nil
		}, nil
	}
	if p.hasPrefix("!") {
		p.consume("!")
		p.skipSpace()
		if p.peek() != '{' {
			return nil, dpmlerrors.New(dpmlerrors.MalformedLine, p.pos, "\"!\" must be followed by a {path} reference")
		}
		path, err := p.parseBracePath()
		if err != nil {
			return nil, err
		}
		resolver := p.resolver
		return func() (operand, error) {
			_, found, err := resolver.ResolveNode(path)
			if err != nil {
				// spec §4.7: "!X never fails for missing nodes" — any
				// resolution failure is treated as non-existence.
				return operand{val: node.NewBool(false)}, nil
			}
			return operand{val: node.NewBool(found)}, nil
		}, nil
	}
	return p.parseComparison()
}

var compareOps = []string{"==", "!=", ">=", "<=", ">", "<"}

func (p *parser) parseComparison() (evalFn, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	for _, op := range compareOps {
		if p.hasPrefix(op) {
			p.consume(op)
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			table := p.resolver.UnitTable()
			pos := p.pos
			return combineCompare(op, left, right, table, pos), nil
		}
	}
	return left, nil
}

func (p *parser) parsePrimary() (evalFn, error) {
	p.skipSpace()
	switch p.peek() {
	case '(':
		p.i++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, dpmlerrors.New(dpmlerrors.UnbalancedParen, p.pos, "missing closing parenthesis")
		}
		p.i++
		return inner, nil
	case '{':
		path, err := p.parseBracePath()
		if err != nil {
			return nil, err
		}
		resolver := p.resolver
		pos := p.pos
		return func() (operand, error) {
			n, found, err := resolver.ResolveNode(path)
			if err != nil {
				return operand{}, err
			}
			if !found {
				return operand{}, dpmlerrors.Newf(dpmlerrors.NoLocalNodes, pos, "reference %q did not resolve to a node", path)
			}
			return operand{val: n.Value, units: n.Units, typed: true}, nil
		}, nil
	case '\'', '"':
		text, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return func() (operand, error) {
			return operand{val: node.NewString(text), raw: text}, nil
		}, nil
	default:
		text := p.readLiteralToken()
		if text == "" {
			return nil, dpmlerrors.New(dpmlerrors.MalformedLine, p.pos, "expected an operand in expression")
		}
		op := parseLiteralOperand(text)
		return func() (operand, error) {
			return op, nil
		}, nil
	}
}

func (p *parser) parseBracePath() (string, error) {
	p.skipSpace()
	if p.peek() != '{' {
		return "", dpmlerrors.New(dpmlerrors.MalformedLine, p.pos, "expected \"{\"")
	}
	start := p.i + 1
	end := -1
	for j := start; j < len(p.input); j++ {
		if p.input[j] == '}' {
			end = j
			break
		}
	}
	if end < 0 {
		return "", dpmlerrors.New(dpmlerrors.UnbalancedParen, p.pos, "missing closing \"}\" in reference")
	}
	path := string(p.input[start:end])
	p.i = end + 1
	return path, nil
}

func (p *parser) parseQuoted() (string, error) {
	quote := p.peek()
	start := p.i + 1
	end := -1
	for j := start; j < len(p.input); j++ {
		if p.input[j] == quote {
			end = j
			break
		}
	}
	if end < 0 {
		return "", dpmlerrors.New(dpmlerrors.MalformedLine, p.pos, "unterminated quoted literal")
	}
	text := string(p.input[start:end])
	p.i = end + 1
	return text, nil
}

// readLiteralToken consumes the longest run of characters that doesn't
// start a "(", ")", or one of the logic/comparison operators, so that a
// literal like "57300 g" (a number plus a trailing unit word) is read as one
// token without stopping at the internal space.
func (p *parser) readLiteralToken() string {
	start := p.i
	j := p.i
	for j < len(p.input) {
		c := p.input[j]
		if c == '(' || c == ')' {
			break
		}
		if opStartsAt(p.input, j) {
			break
		}
		j++
	}
	p.i = j
	return strings.TrimSpace(string(p.input[start:j]))
}

func opStartsAt(input []rune, j int) bool {
	for _, op := range []string{"&&", "||", "==", "!=", ">=", "<="} {
		rs := []rune(op)
		if j+len(rs) <= len(input) && string(input[j:j+len(rs)]) == op {
			return true
		}
	}
	if input[j] == '>' || input[j] == '<' {
		return true
	}
	return false
}

func parseLiteralOperand(text string) operand {
	switch text {
	case "true":
		return operand{val: node.NewBool(true), raw: text}
	case "false":
		return operand{val: node.NewBool(false), raw: text}
	}

	word, rest := text, ""
	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		word, rest = text[:idx], strings.TrimSpace(text[idx:])
	}

	if v, err := strconv.ParseInt(word, 10, 64); err == nil {
		return operand{val: node.NewInt(v), units: rest, raw: text}
	}
	if v, err := strconv.ParseFloat(word, 64); err == nil {
		return operand{val: node.NewFloat(v), units: rest, raw: text}
	}
	return operand{val: node.NewString(text), raw: text}
}

func combineOr(l, r evalFn, pos dpmlerrors.Position) evalFn {
	return func() (operand, error) {
		lv, err := l()
		if err != nil {
			return operand{}, err
		}
		if lv.val.Kind() != node.ValueBool {
			return operand{}, dpmlerrors.New(dpmlerrors.NonBoolExpression, pos, "left operand of \"||\" is not boolean")
		}
		if lv.val.BoolValue() {
			return operand{val: node.NewBool(true)}, nil
		}
		rv, err := r()
		if err != nil {
			return operand{}, err
		}
		if rv.val.Kind() != node.ValueBool {
			return operand{}, dpmlerrors.New(dpmlerrors.NonBoolExpression, pos, "right operand of \"||\" is not boolean")
		}
		return operand{val: node.NewBool(rv.val.BoolValue())}, nil
	}
}

func combineAnd(l, r evalFn, pos dpmlerrors.Position) evalFn {
	return func() (operand, error) {
		lv, err := l()
		if err != nil {
			return operand{}, err
		}
		if lv.val.Kind() != node.ValueBool {
			return operand{}, dpmlerrors.New(dpmlerrors.NonBoolExpression, pos, "left operand of \"&&\" is not boolean")
		}
		if !lv.val.BoolValue() {
			return operand{val: node.NewBool(false)}, nil
		}
		rv, err := r()
		if err != nil {
			return operand{}, err
		}
		if rv.val.Kind() != node.ValueBool {
			return operand{}, dpmlerrors.New(dpmlerrors.NonBoolExpression, pos, "right operand of \"&&\" is not boolean")
		}
		return operand{val: node.NewBool(rv.val.BoolValue())}, nil
	}
}

func combineCompare(op string, lFn, rFn evalFn, table *units.Table, pos dpmlerrors.Position) evalFn {
	return func() (operand, error) {
		l, err := lFn()
		if err != nil {
			return operand{}, err
		}
		r, err := rFn()
		if err != nil {
			return operand{}, err
		}

		if l.typed && !r.typed {
			r.val = coerceKind(r, l.val.Kind())
		} else if r.typed && !l.typed {
			l.val = coerceKind(l, r.val.Kind())
		}

		if l.units != "" && r.units != "" && isNumericKind(l.val.Kind()) {
			converted, err := units.Convert(numericOf(r.val), r.units, l.units, table)
			if err != nil {
				return operand{}, err
			}
			r.val = numericLike(l.val.Kind(), converted)
		}

		switch op {
		case "==":
			return operand{val: node.NewBool(valuesEqual(l.val, r.val))}, nil
		case "!=":
			return operand{val: node.NewBool(!valuesEqual(l.val, r.val))}, nil
		case ">", "<", ">=", "<=":
			ln, rn := numericOf(l.val), numericOf(r.val)
			var result bool
			switch op {
			case ">":
				result = ln > rn
			case "<":
				result = ln < rn
			case ">=":
				result = ln >= rn
			case "<=":
				result = ln <= rn
			}
			return operand{val: node.NewBool(result)}, nil
		default:
			return operand{}, dpmlerrors.Newf(dpmlerrors.MalformedLine, pos, "unknown comparison operator %q", op)
		}
	}
}

func isNumericKind(k node.ValueKind) bool {
	return k == node.ValueInt || k == node.ValueFloat
}

func numericOf(v node.Value) float64 {
	switch v.Kind() {
	case node.ValueInt:
		return float64(v.IntValue())
	case node.ValueFloat:
		return v.FloatValue()
	default:
		return 0
	}
}

func numericLike(k node.ValueKind, f float64) node.Value {
	if k == node.ValueInt {
		return node.NewInt(int64(f))
	}
	return node.NewFloat(f)
}

func valuesEqual(a, b node.Value) bool {
	if isNumericKind(a.Kind()) && isNumericKind(b.Kind()) {
		return relClose(numericOf(a), numericOf(b), units.RelTolerance)
	}
	return a.Equal(b)
}

func relClose(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	largest := a
	if largest < 0 {
		largest = -largest
	}
	if rb := b; rb < 0 {
		rb = -rb
		if rb > largest {
			largest = rb
		}
	} else if rb > largest {
		largest = rb
	}
	return diff <= largest*tol
}

func coerceKind(op operand, target node.ValueKind) node.Value {
	if op.val.Kind() == target {
		return op.val
	}
	switch target {
	case node.ValueBool:
		return node.NewBool(strings.TrimSpace(op.raw) == "true")
	case node.ValueInt:
		if op.val.Kind() == node.ValueFloat {
			return node.NewInt(int64(op.val.FloatValue()))
		}
		if v, err := strconv.ParseInt(strings.TrimSpace(firstWord(op.raw)), 10, 64); err == nil {
			return node.NewInt(v)
		}
	case node.ValueFloat:
		if op.val.Kind() == node.ValueInt {
			return node.NewFloat(float64(op.val.IntValue()))
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(firstWord(op.raw)), 64); err == nil {
			return node.NewFloat(v)
		}
	case node.ValueString:
		return node.NewString(strings.TrimSpace(op.raw))
	}
	return op.val
}

func firstWord(s string) string {
	if idx := strings.IndexAny(s, " \t"); idx >= 0 {
		return s[:idx]
	}
	return s
}
