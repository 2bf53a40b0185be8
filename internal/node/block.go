package node

import (
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
)

// FoldedLine is one logical line produced by folding triple-quoted blocks
// out of a raw line list (spec §4.2). StartLine is the 1-based source line
// the logical line began on, for diagnostics.
type FoldedLine struct {
	Text      string
	StartLine int
}

// FoldBlocks scans source text for `"""` fences and merges each fenced block
// into a single logical line carrying embedded newlines, so the rest of the
// pipeline (L, N) never needs to reason about multi-line literals directly.
func FoldBlocks(source, path string) ([]FoldedLine, error) {
	lines := strings.Split(source, "\n")
	out := make([]FoldedLine, 0, len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]
		startLine := i + 1

		idx := strings.Index(line, `"""`)
		if idx < 0 {
			out = append(out, FoldedLine{Text: line, StartLine: startLine})
			i++
			continue
		}

		// A closing fence on the same line means a self-contained block; no
		// folding across lines is needed.
		if strings.Contains(line[idx+3:], `"""`) {
			out = append(out, FoldedLine{Text: line, StartLine: startLine})
			i++
			continue
		}

		j := i + 1
		for j < len(lines) && !strings.Contains(lines[j], `"""`) {
			j++
		}
		if j >= len(lines) {
			return nil, dpmlerrors.Newf(dpmlerrors.UnterminatedBlock,
				dpmlerrors.Position{Source: path, Line: startLine},
				"block opened with \"\"\" on this line is never closed")
		}

		var sb strings.Builder
		sb.WriteString(line)
		for _, body := range lines[i+1 : j] {
			sb.WriteString("\n")
			sb.WriteString(body)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimLeft(lines[j], " \t"))

		out = append(out, FoldedLine{Text: sb.String(), StartLine: startLine})
		i = j + 1
	}

	return out, nil
}
