package interp

import (
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/interp/expr"
	"github.com/vrtulka23/dpml/internal/node"
)

// evalCaseExpr evaluates an "@case" node's guard expression through expr.Evaluate
// and stores the result directly on the node's Value, so dispatchCondition can
// read it back as a plain bool.
func (ip *Interpreter) evalCaseExpr(n *node.Node) error {
	result, err := expr.Evaluate(n.ValueRaw, ip, n.Pos())
	if err != nil {
		return err
	}
	n.Value = node.NewBool(result)
	return nil
}

// dispatchCondition drives the case-name/case-count stacks for one
// "@case"/"@else"/"@end" marker node (spec §4.4 Step 3). This is a direct
// port of the reference interpreter's condition bookkeeping, generalized from
// its "." name separator to this grammar's "@" separator: a case frame's
// stored name keeps the trailing separator character, so comparisons like
// top+"case"==n.Name line up exactly as in the original.
func (ip *Interpreter) dispatchCondition(n node.Node) error {
	last := len(ip.caseNames) - 1
	top := ip.caseNames[last]

	switch {
	case strings.HasSuffix(n.Name, "@case"):
		frameName := strings.TrimSuffix(n.Name, "case")
		if top+"case" != n.Name {
			ip.caseNames = append(ip.caseNames, frameName)
			ip.caseCounts = append(ip.caseCounts, 0)
			last++
		}
		if n.Value.BoolValue() || ip.caseCounts[last] == 1 {
			ip.caseCounts[last]++
		}

	case n.Name == top+"else":
		ip.caseCounts[last]++

	case n.Name == top+"end":
		ip.caseNames = ip.caseNames[:last]
		ip.caseCounts = ip.caseCounts[:last]

	default:
		return dpmlerrors.Newf(dpmlerrors.InvalidCondition, n.Pos(), "invalid condition marker %q", n.Name)
	}
	return nil
}

// caseSkipOrRename applies the case-stack filtering step to a value-bearing
// node (spec §4.4 Step 3, the "else" branch of the reference dispatcher):
// while inside an active case block, a node belonging to an already-decided
// sibling is dropped, and the surviving node's name has every "@case."/
// "@else." segment stripped so it lands under its case block's own parent
// name instead of a synthetic per-branch one.
func (ip *Interpreter) caseSkipOrRename(n *node.Node) (skip bool) {
	last := len(ip.caseNames) - 1
	top := ip.caseNames[last]
	if top == "" {
		return false
	}
	if ip.caseCounts[last] > 1 {
		return true
	}
	if !strings.HasPrefix(n.Name, top) {
		ip.caseNames = ip.caseNames[:last]
		ip.caseCounts = ip.caseCounts[:last]
	}
	n.Name = strings.ReplaceAll(n.Name, "@case.", "")
	n.Name = strings.ReplaceAll(n.Name, "@else.", "")
	return false
}
