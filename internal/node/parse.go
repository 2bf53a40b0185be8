package node

// ParseLine runs L then N over a single logical (already block-folded) line,
// the combination the interpreter actually drives per source line.
func ParseLine(text, source string, lineNum int) (Node, error) {
	raw, err := ParseRawLine(text, source, lineNum)
	if err != nil {
		return Node{}, err
	}
	return Classify(raw), nil
}
