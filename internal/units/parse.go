package units

import (
	"regexp"
	"strconv"
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
)

var trailingExponent = regexp.MustCompile(`^(.+?)(-?\d+)$`)

// ParseToken parses a single unit atom: a bare number, a bracketed constant
// ("[pi]"), or a symbol built from an optional SI prefix, a base/derived/
// arbitrary/custom unit symbol, and an optional trailing integer exponent
// (spec §4.5.3). Matching tries, in order: whole-token numeric literal,
// whole-token bracket constant, direct (unprefixed) unit symbol, then
// prefix+unit symbol.
func ParseToken(token string, table *Table) (Unit, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Unit{}, dpmlerrors.New(dpmlerrors.MalformedLine, dpmlerrors.Position{Source: "expression"}, "empty unit token")
	}

	if v, err := strconv.ParseFloat(token, 64); err == nil {
		return New(v, Vector{}), nil
	}

	if u, ok := table.Constants[token]; ok {
		return u, nil
	}

	symbolPart, exponent := splitExponent(token)

	if base, ok := table.lookupAny(symbolPart); ok {
		u := Power(base, exponent)
		u.Symbol = token
		u.SymbolBase = symbolPart
		u.Arbitrary = base.Arbitrary
		return u, nil
	}

	base, ok := splitPrefix(symbolPart, table)
	if !ok {
		return Unit{}, dpmlerrors.Newf(dpmlerrors.UnknownPrefix, dpmlerrors.Position{Source: "expression"},
			"unknown unit %q", token)
	}
	u := Power(base, exponent)
	u.Symbol = token
	u.SymbolBase = base.SymbolBase
	u.Arbitrary = base.Arbitrary
	return u, nil
}

// splitExponent strips a trailing integer (optionally signed) from a unit
// symbol, e.g. "m-2" -> ("m", -2), "s2" -> ("s", 2), "Hz" -> ("Hz", 1).
func splitExponent(symbol string) (string, int) {
	m := trailingExponent.FindStringSubmatch(symbol)
	if m == nil {
		return symbol, 1
	}
	exp, err := strconv.Atoi(m[2])
	if err != nil {
		return symbol, 1
	}
	return m[1], exp
}

// splitPrefix tries every known SI prefix (longest first, so "da" is tried
// before "d") as a leading substring of symbolPart, accepting the first split
// whose remainder is a known unit symbol.
func splitPrefix(symbolPart string, table *Table) (Unit, bool) {
	prefixes := []string{"da", "Y", "Z", "E", "P", "T", "G", "M", "k", "h", "d", "c", "m", "u", "n", "p", "f", "a", "z", "y"}
	for _, p := range prefixes {
		if len(p) >= len(symbolPart) || !strings.HasPrefix(symbolPart, p) {
			continue
		}
		remainder := symbolPart[len(p):]
		unit, ok := table.lookupAny(remainder)
		if !ok {
			continue
		}
		prefixKey := prefixSymbols[p]
		prefixUnit := table.Prefixes[prefixKey]
		combined := Multiply(prefixUnit, unit)
		combined.Arbitrary = unit.Arbitrary
		combined.Name = prefixUnit.Name + unit.Name
		combined.SymbolBase = remainder
		return combined, true
	}
	return Unit{}, false
}

type exprTerm struct {
	unit Unit
	op   byte // '*' or '/'; unused for the first term
}

// ParseExpression parses a unit expression of tokens joined by "*"/"/" with
// optional parentheses (spec §4.5.3). Division is not left-associative:
// within a run of terms with no enclosing parens, the FIRST top-level
// operator decides the grouping for everything that follows it. If that
// operator is "/", every remaining term multiplies together into a single
// denominator regardless of further "*"/"/" between them; if it is "*", the
// first term multiplies the (recursively evaluated) remainder.
func ParseExpression(expr string, table *Table) (Unit, error) {
	terms, err := tokenizeExpr(expr, table)
	if err != nil {
		return Unit{}, err
	}
	if len(terms) == 0 {
		return Unit{}, dpmlerrors.New(dpmlerrors.MalformedLine, dpmlerrors.Position{Source: "expression"}, "empty unit expression")
	}
	return evalTerms(terms), nil
}

func evalTerms(terms []exprTerm) Unit {
	result := terms[0].unit
	if len(terms) == 1 {
		return result
	}
	if terms[1].op == '*' {
		return Multiply(result, evalTerms(terms[1:]))
	}
	denom := terms[1].unit
	for i := 2; i < len(terms); i++ {
		denom = Multiply(denom, terms[i].unit)
	}
	return Divide(result, denom)
}

// tokenizeExpr splits expr on top-level '*'/'/' (outside parentheses) and
// resolves each piece, recursing into ParseExpression for parenthesized
// groups and into ParseToken for atoms.
func tokenizeExpr(expr string, table *Table) ([]exprTerm, error) {
	expr = strings.TrimSpace(expr)
	var terms []exprTerm
	var buf strings.Builder
	depth := 0
	pendingOp := byte(0)

	flush := func() error {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if text == "" {
			return dpmlerrors.New(dpmlerrors.UnbalancedParen, dpmlerrors.Position{Source: "expression"}, "empty term in unit expression")
		}
		var u Unit
		var err error
		if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
			u, err = ParseExpression(text[1:len(text)-1], table)
		} else {
			u, err = ParseToken(text, table)
		}
		if err != nil {
			return err
		}
		terms = append(terms, exprTerm{unit: u, op: pendingOp})
		return nil
	}

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth < 0 {
				return nil, dpmlerrors.New(dpmlerrors.UnbalancedParen, dpmlerrors.Position{Source: "expression"}, "unbalanced parenthesis in unit expression")
			}
			buf.WriteByte(c)
		case '*', '/':
			if depth == 0 {
				if err := flush(); err != nil {
					return nil, err
				}
				pendingOp = c
				continue
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	if depth != 0 {
		return nil, dpmlerrors.New(dpmlerrors.UnbalancedParen, dpmlerrors.Position{Source: "expression"}, "unbalanced parenthesis in unit expression")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return terms, nil
}

// Convert converts value from the unit described by fromExpr to the unit
// described by toExpr, dispatching through each side's ArbitraryConverter so
// affine units (Celsius, Fahrenheit) convert correctly alongside ordinary
// multiplicative ones (spec §4.5.5, DESIGN NOTES §9).
func Convert(value float64, fromExpr, toExpr string, table *Table) (float64, error) {
	from, err := ParseExpression(fromExpr, table)
	if err != nil {
		return 0, err
	}
	to, err := ParseExpression(toExpr, table)
	if err != nil {
		return 0, err
	}
	if !SamePhysicalDimension(from, to) {
		return 0, dpmlerrors.Newf(dpmlerrors.DimMismatch, dpmlerrors.Position{Source: "expression"},
			"cannot convert %q to %q: incompatible dimensions", fromExpr, toExpr)
	}

	convFrom := table.converterFor(from.SymbolBase)
	convTo := table.converterFor(to.SymbolBase)

	canonical := convFrom.ToCanonical(value * from.EffectiveMagnitude())
	return convTo.FromCanonical(canonical) / to.EffectiveMagnitude(), nil
}
