package interp

import (
	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
	"github.com/vrtulka23/dpml/internal/units"
)

// dispatchValue is Step 3's default branch: every value-bearing node (typed
// declarations, table expansions already resolved to arrays, and "mod"
// lines) lands here to be cast, checked against an existing node of the same
// name, and either merged into R or appended fresh.
func (ip *Interpreter) dispatchValue(n node.Node, resolved bool) error {
	if ip.caseSkipOrRename(&n) {
		return nil
	}

	idx := ip.findNode(n.Name)

	if n.Kind == node.KindMod && idx < 0 {
		return dpmlerrors.Newf(dpmlerrors.UndefinedNodeModified, n.Pos(),
			"modifying undefined node %q", n.Name)
	}

	if !resolved {
		targetKind := kindForNodeKind(n.Kind)
		if n.Kind == node.KindMod {
			targetKind = kindForNodeKind(ip.R[idx].Kind)
		}
		v, err := ip.castValue(n, targetKind)
		if err != nil {
			return err
		}
		n.Value = v
	}

	if idx >= 0 {
		return ip.modifyNode(idx, n)
	}

	if !n.MatchesOptions() {
		return dpmlerrors.Newf(dpmlerrors.OptionViolation, n.Pos(),
			"value for %q is not among its declared options", n.Name).WithDetail(n.ValueRaw)
	}
	ip.R = append(ip.R, n)
	return nil
}

// modifyNode merges n's value into the existing node at idx (spec §4.4.2
// "modify"): the declared kind can't change outside a "mod" line, units
// convert into the host's own units when both sides carry one explicitly,
// and the merged value is re-checked against the host's option list.
func (ip *Interpreter) modifyNode(idx int, n node.Node) error {
	host := ip.R[idx]

	if n.Kind != node.KindMod && n.Kind != host.Kind {
		return dpmlerrors.Newf(dpmlerrors.TypeChangeRejected, n.Pos(),
			"cannot change %q from %s to %s", host.Name, host.Kind, n.Kind)
	}

	newValue, newUnits := n.Value, n.Units
	if newUnits != "" && host.Units != "" && isNumericKind(newValue.Kind()) {
		converted, err := units.Convert(numericOf(newValue), newUnits, host.Units, ip.Units)
		if err != nil {
			return err
		}
		newValue = numericLike(newValue.Kind(), converted)
		newUnits = host.Units
	} else if newUnits == "" {
		newUnits = host.Units
	}

	host.Value = newValue
	host.Units = newUnits
	host.ValueRaw = n.ValueRaw
	host.Defined = host.Defined || n.Defined

	if !host.MatchesOptions() {
		return dpmlerrors.Newf(dpmlerrors.OptionViolation, n.Pos(),
			"new value for %q is not among its declared options", host.Name).WithDetail(n.ValueRaw)
	}

	ip.R[idx] = host
	return nil
}

// attachOption folds an "=value" option line into the most recently
// appended node (spec §4.4 Step 3 option hook): the first option implicitly
// allows the node's own not-yet-defined null state unless it was declared
// with "!", and every option is cast and unit-converted against the host's
// own declared type and units.
func (ip *Interpreter) attachOption(n node.Node) error {
	if len(ip.R) == 0 {
		return dpmlerrors.New(dpmlerrors.OptionUnsupported, n.Pos(), "option given with no preceding value node")
	}
	host := &ip.R[len(ip.R)-1]
	if host.Kind == node.KindTable {
		return dpmlerrors.Newf(dpmlerrors.OptionUnsupported, n.Pos(), "table node %q cannot declare options", host.Name)
	}

	var v node.Value
	if n.IsImport {
		results, err := ip.Request(n.ValueRaw, []int{1}, n.Pos())
		if err != nil {
			return err
		}
		v = results[0].Value
	} else {
		cast, err := ip.castValue(n, kindForNodeKind(host.Kind))
		if err != nil {
			return err
		}
		v = cast
	}

	if n.Units != "" && host.Units != "" && isNumericKind(v.Kind()) {
		converted, err := units.Convert(numericOf(v), n.Units, host.Units, ip.Units)
		if err != nil {
			return err
		}
		v = numericLike(v.Kind(), converted)
	}

	if len(host.Options) == 0 && !host.Defined {
		host.Options = append(host.Options, node.Null)
	}
	host.Options = append(host.Options, v)

	if !host.MatchesOptions() {
		return dpmlerrors.Newf(dpmlerrors.OptionViolation, host.Pos(),
			"current value for %q is not among its declared options", host.Name).WithDetail(host.ValueRaw)
	}
	return nil
}
