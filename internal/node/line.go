package node

import (
	"regexp"
	"strconv"
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
)

// rawForm identifies which grammar alternative (spec §4.1 table) a line
// matched, before N (classify.go) turns it into a Node.Kind.
type rawForm int

const (
	formEmpty rawForm = iota
	formImport
	formUnitDef
	formOption
	formCondition
	formGroup
	formMod
	formTyped
)

// RawLine is L's output: the structural fields extracted from one logical
// (post block-fold) source line, before N classifies them into a Node.
type RawLine struct {
	Form rawForm

	Indent  int
	Name    string
	Type    string // bool/int/float/str/table; empty for mod/group/import/unit/condition
	Defined bool
	Dims    []Bound

	ValueRaw      string
	ValueIsImport bool
	Units         string
	Comment       string

	ImportPath string // formImport

	ConditionKeyword string // "case" | "else" | "end"
	ConditionExpr    string // formCondition, keyword=="case"

	Source string
	Line   int
}

var (
	nameClass    = `[A-Za-z0-9_.\-]+`
	unitNameClas = `[A-Za-z0-9_]+`

	importLineRe = regexp.MustCompile(`^(?:(` + nameClass + `)\s+)?\{([^}]*)\}$`)
	unitDefRe    = regexp.MustCompile(`^(` + unitNameClas + `)@unit\s+(.+)$`)
	conditionRe  = regexp.MustCompile(`^(?:(` + nameClass + `))?@(case|else|end)(?:\s+(.*))?$`)
	nameOnlyRe   = regexp.MustCompile(`^` + nameClass + `$`)
	modRe        = regexp.MustCompile(`^(` + nameClass + `)\s*=\s*(.+)$`)
	typedRe      = regexp.MustCompile(`^(` + nameClass + `)\s+(bool|int|float|str|table)(!)?((?:\[[^\]]*\])*)\s*=\s*(.+)$`)
	dimsPartRe   = regexp.MustCompile(`\[([^\]]*)\]`)
)

// ParseRawLine runs the line scanner (L) over one logical line (already
// block-folded) and extracts its structural fields, in the priority order
// given by spec §4.1's grammar table.
func ParseRawLine(text, source string, lineNum int) (RawLine, error) {
	raw := RawLine{Source: source, Line: lineNum}

	encoded := EncodeSymbols(text)
	trimmedRight := strings.TrimRight(encoded, " \t\r")
	if strings.TrimSpace(trimmedRight) == "" {
		raw.Form = formEmpty
		return raw, nil
	}

	indent := leadingSpaces(trimmedRight)
	raw.Indent = indent
	body := trimmedRight[indent:]

	if m := importLineRe.FindStringSubmatch(body); m != nil {
		raw.Form = formImport
		raw.Name = m[1]
		raw.ImportPath = DecodeSymbols(m[2])
		return raw, nil
	}

	if m := unitDefRe.FindStringSubmatch(body); m != nil {
		raw.Form = formUnitDef
		raw.Name = m[1]
		raw.ValueRaw = DecodeSymbols(strings.TrimSpace(m[2]))
		return raw, nil
	}

	if strings.HasPrefix(body, "#") {
		raw.Form = formEmpty
		return raw, nil
	}

	if strings.HasPrefix(body, "=") {
		rest := strings.TrimSpace(body[1:])
		valueRaw, units, comment, isImport, err := parseValueUnitsComment(rest, raw.Pos())
		if err != nil {
			return RawLine{}, err
		}
		raw.Form = formOption
		raw.ValueRaw, raw.Units, raw.Comment, raw.ValueIsImport = valueRaw, units, comment, isImport
		return raw, nil
	}

	if m := conditionRe.FindStringSubmatch(body); m != nil {
		raw.Form = formCondition
		raw.Name = m[1]
		raw.ConditionKeyword = m[2]
		raw.ConditionExpr = DecodeSymbols(strings.TrimSpace(m[3]))
		return raw, nil
	}

	if nameOnlyRe.MatchString(body) {
		raw.Form = formGroup
		raw.Name = body
		return raw, nil
	}

	if m := typedRe.FindStringSubmatch(body); m != nil {
		dims, err := parseDims(m[4], raw.Pos())
		if err != nil {
			return RawLine{}, err
		}
		valueRaw, units, comment, isImport, err := parseValueUnitsComment(m[5], raw.Pos())
		if err != nil {
			return RawLine{}, err
		}
		raw.Form = formTyped
		raw.Name = m[1]
		raw.Type = m[2]
		raw.Defined = m[3] == "!"
		raw.Dims = dims
		raw.ValueRaw, raw.Units, raw.Comment, raw.ValueIsImport = valueRaw, units, comment, isImport
		return raw, nil
	}

	if m := modRe.FindStringSubmatch(body); m != nil {
		valueRaw, units, comment, isImport, err := parseValueUnitsComment(m[2], raw.Pos())
		if err != nil {
			return RawLine{}, err
		}
		raw.Form = formMod
		raw.Name = m[1]
		raw.ValueRaw, raw.Units, raw.Comment, raw.ValueIsImport = valueRaw, units, comment, isImport
		return raw, nil
	}

	return RawLine{}, dpmlerrors.Newf(dpmlerrors.MalformedLine, raw.Pos(),
		"line does not match any recognized grammar form").WithSource(text)
}

func (r RawLine) Pos() dpmlerrors.Position {
	return dpmlerrors.Position{Source: r.Source, Line: r.Line}
}

func leadingSpaces(s string) int {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(s)
}

// parseValueUnitsComment splits the text following "=" (or inside an option
// line) into its value, unit expression, and trailing comment, per the VALUE
// grammar in spec §4.1: a folded triple-quoted block, a quoted string, an
// import reference, or a bare token ending at whitespace or "#".
func parseValueUnitsComment(rest string, pos dpmlerrors.Position) (valueRaw, units, comment string, isImport bool, err error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", "", "", false, dpmlerrors.New(dpmlerrors.MalformedLine, pos, "missing value after \"=\"")
	}

	var valueEnd int
	switch {
	case strings.HasPrefix(rest, `"""`):
		closeIdx := strings.Index(rest[3:], `"""`)
		if closeIdx < 0 {
			return "", "", "", false, dpmlerrors.New(dpmlerrors.UnterminatedBlock, pos, "triple-quoted value has no closing fence")
		}
		valueEnd = 3 + closeIdx + 3
	case strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, `'`):
		quote := rest[0]
		closeIdx := strings.IndexByte(rest[1:], quote)
		if closeIdx < 0 {
			return "", "", "", false, dpmlerrors.New(dpmlerrors.MalformedLine, pos, "quoted value has no closing quote")
		}
		valueEnd = 1 + closeIdx + 1
	case strings.HasPrefix(rest, "{"):
		closeIdx := strings.IndexByte(rest, '}')
		if closeIdx < 0 {
			return "", "", "", false, dpmlerrors.New(dpmlerrors.MalformedLine, pos, "import reference has no closing \"}\"")
		}
		valueEnd = closeIdx + 1
		isImport = true
	case strings.HasPrefix(rest, "["):
		depth := 0
		end := -1
		for i, r := range rest {
			switch r {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return "", "", "", false, dpmlerrors.New(dpmlerrors.MalformedLine, pos, "array literal has no closing \"]\"")
		}
		valueEnd = end + 1
	default:
		valueEnd = len(rest)
		for i, r := range rest {
			if r == ' ' || r == '\t' || r == '#' {
				valueEnd = i
				break
			}
		}
	}

	valueRaw = DecodeSymbols(rest[:valueEnd])
	remainder := strings.TrimSpace(rest[valueEnd:])

	if hashIdx := strings.IndexByte(remainder, '#'); hashIdx >= 0 {
		units = strings.TrimSpace(remainder[:hashIdx])
		comment = DecodeSymbols(strings.TrimSpace(remainder[hashIdx+1:]))
	} else {
		units = remainder
	}

	return valueRaw, units, comment, isImport, nil
}

// parseDims parses a run of "[N]"/"[N:M]"/"[:M]"/"[N:]"/"[:]" segments into
// Bound values (spec §4.1 "[DIMS]").
func parseDims(s string, pos dpmlerrors.Position) ([]Bound, error) {
	matches := dimsPartRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, nil
	}
	bounds := make([]Bound, 0, len(matches))
	for _, m := range matches {
		part := strings.TrimSpace(m[1])
		if part == "" {
			bounds = append(bounds, Bound{MinOpen: true, MaxOpen: true})
			continue
		}
		idx := strings.IndexByte(part, ':')
		if idx < 0 {
			v, err := strconv.Atoi(part)
			if err != nil {
				return nil, dpmlerrors.Newf(dpmlerrors.MalformedLine, pos, "invalid dimension bound %q", part)
			}
			bounds = append(bounds, Bound{Min: v, Max: v})
			continue
		}
		b := Bound{}
		minStr, maxStr := strings.TrimSpace(part[:idx]), strings.TrimSpace(part[idx+1:])
		if minStr == "" {
			b.MinOpen = true
		} else if v, err := strconv.Atoi(minStr); err == nil {
			b.Min = v
		} else {
			return nil, dpmlerrors.Newf(dpmlerrors.MalformedLine, pos, "invalid dimension bound %q", part)
		}
		if maxStr == "" {
			b.MaxOpen = true
		} else if v, err := strconv.Atoi(maxStr); err == nil {
			b.Max = v
		} else {
			return nil, dpmlerrors.Newf(dpmlerrors.MalformedLine, pos, "invalid dimension bound %q", part)
		}
		bounds = append(bounds, b)
	}
	return bounds, nil
}
