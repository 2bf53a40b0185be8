package interp

import (
	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/interp/expr"
)

// Expression evaluates a standalone boolean expression against this
// interpreter's finalized result list and unit table (spec §6
// `expression(expr) → bool`), the same evaluator Step 1 uses internally for
// "@case" guards.
func (ip *Interpreter) Expression(text string) (bool, error) {
	return expr.Evaluate(text, ip, dpmlerrors.Position{Source: ip.source})
}
