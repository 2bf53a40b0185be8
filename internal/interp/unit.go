package interp

import (
	"strconv"
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
	"github.com/vrtulka23/dpml/internal/units"
)

// registerUnit handles a "NAME@unit MAGNITUDE UNITEXPR" declaration (spec
// §4.4 unit-def hook, §4.5.4): the magnitude and unit expression combine into
// one composite Unit, pushed into the active table under the bracketed
// constant symbol "[NAME]" rather than a prefixable symbol, since a
// source-defined named quantity (e.g. "[parsec]") is referenced by name, not
// composed with SI prefixes.
func (ip *Interpreter) registerUnit(n node.Node) error {
	fields := strings.SplitN(strings.TrimSpace(n.ValueRaw), " ", 2)
	if len(fields) != 2 {
		return dpmlerrors.Newf(dpmlerrors.MalformedLine, n.Pos(),
			"unit definition %q needs a magnitude and a unit expression", n.ValueRaw)
	}

	magnitude, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return dpmlerrors.Newf(dpmlerrors.MalformedLine, n.Pos(),
			"unit definition magnitude %q is not a number", fields[0])
	}

	parsed, err := units.ParseExpression(strings.TrimSpace(fields[1]), ip.Units)
	if err != nil {
		return err
	}

	composite := units.Multiply(units.New(magnitude, units.Vector{}), parsed)
	composite.Name = n.Name
	composite.Definition = n.ValueRaw

	return ip.Units.RegisterConstant(n.Name, composite, n.Pos())
}
