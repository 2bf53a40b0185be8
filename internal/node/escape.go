package node

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Marker sequences used to hide escaped quotes and literal newlines from the
// line scanner (spec §4.1: "escaped quotes and literal newlines inside
// quoted values are replaced with opaque markers so the scanner is
// line-local; markers are reversed after classification"). The \x00 prefix
// keeps them far outside any character DPML source legitimately contains.
const (
	markerDoubleQuote = "\x00DQ\x00"
	markerSingleQuote = "\x00SQ\x00"
	markerNewline     = "\x00NL\x00"
)

// EncodeSymbols replaces escaped quote characters and literal newlines
// (the latter arising from block-folded triple-quoted text, see block.go)
// with opaque markers, so the rest of the line-parsing pipeline can treat
// the line as a single scan without tracking escape state itself.
func EncodeSymbols(s string) string {
	var sb strings.Builder
	var quote rune
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\n':
			sb.WriteString(markerNewline)
		case quote != 0 && c == '\\' && i+1 < len(runes) && runes[i+1] == quote:
			if quote == '"' {
				sb.WriteString(markerDoubleQuote)
			} else {
				sb.WriteString(markerSingleQuote)
			}
			i++
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
			sb.WriteRune(c)
		case quote != 0 && c == quote:
			quote = 0
			sb.WriteRune(c)
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// DecodeSymbols reverses EncodeSymbols, restoring literal quotes and
// newlines after classification has extracted token boundaries.
func DecodeSymbols(s string) string {
	s = strings.ReplaceAll(s, markerDoubleQuote, `"`)
	s = strings.ReplaceAll(s, markerSingleQuote, `'`)
	s = strings.ReplaceAll(s, markerNewline, "\n")
	return s
}

// NormalizeString applies NFC Unicode normalization to a decoded string
// value, so visually identical strings built from different combining-
// character sequences compare equal after round-tripping through source
// text (spec GLOSSARY "Defined node" round-trip guarantees; teacher pattern
// in internal/interp/string_helpers.go).
func NormalizeString(s string) string {
	return norm.NFC.String(s)
}
