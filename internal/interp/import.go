package interp

import (
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
	"github.com/vrtulka23/dpml/internal/query"
	"github.com/vrtulka23/dpml/internal/units"
)

// splitImportTarget splits an import/reference target into its filename and
// query halves (spec §4.1 import grammar "{filename?query}"): the first "?"
// separates them, a missing "?" means the whole text is a filename with an
// implicit "*" query, and an empty filename (a leading "?") means the query
// runs against this interpreter's own already-parsed nodes. A target still
// wrapped in its "{...}" braces (as a value-position import's ValueRaw is)
// has them removed first.
func splitImportTarget(raw string) (filename, q string) {
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		raw = raw[1 : len(raw)-1]
	}
	idx := strings.IndexByte(raw, '?')
	if idx < 0 {
		return raw, "*"
	}
	return raw[:idx], raw[idx+1:]
}

// resolveQuery runs q against either this interpreter's local result list
// (filename == "") or a freshly parsed sub-interpreter over filename's
// contents (spec §4.4 import hook, §5 recursion/depth bound).
func (ip *Interpreter) resolveQuery(filename, q string, pos dpmlerrors.Position) ([]node.Node, error) {
	if filename == "" {
		if len(ip.R) == 0 {
			return nil, dpmlerrors.New(dpmlerrors.NoLocalNodes, pos,
				"local query has no nodes to select from yet")
		}
		return query.Run(ip.R, q), nil
	}

	if ip.depth+1 > ip.maxDepth {
		return nil, dpmlerrors.Newf(dpmlerrors.ImportCycleOrDepth, pos,
			"import depth exceeded %d while loading %q", ip.maxDepth, filename)
	}

	content, err := ip.reader.Read(filename)
	if err != nil {
		return nil, err
	}

	sub := New(ip.reader)
	sub.depth = ip.depth + 1
	sub.maxDepth = ip.maxDepth
	sub.source = filename
	sub.buf.WriteString(content)
	if err := sub.Initialize(); err != nil {
		return nil, err
	}

	return query.Run(sub.R, q), nil
}

// Request resolves path and enforces an accepted result count (spec §4.4
// import hook, §6 `request`): an empty/nil counts list means any cardinality
// is accepted.
func (ip *Interpreter) Request(path string, counts []int, pos dpmlerrors.Position) ([]node.Node, error) {
	filename, q := splitImportTarget(path)
	results, err := ip.resolveQuery(filename, q, pos)
	if err != nil {
		return nil, err
	}
	if len(counts) > 0 && !checkCount(len(results), counts) {
		return nil, dpmlerrors.Newf(dpmlerrors.BadImportCardinality, pos,
			"reference %q resolved to %d node(s), want one of %v", path, len(results), counts)
	}
	return results, nil
}

func checkCount(n int, accepted []int) bool {
	for _, a := range accepted {
		if n == a {
			return true
		}
	}
	return false
}

// expandImport turns an import node into its resolved, renamed, reparented
// replacement nodes (spec §4.4 import hook): each result is spliced under
// the import's own name (or left bare if the import was anonymous) and
// inherits the import node's indent and provenance.
func (ip *Interpreter) expandImport(n node.Node) ([]node.Node, error) {
	filename, q := splitImportTarget(n.ValueRaw)
	results, err := ip.resolveQuery(filename, q, n.Pos())
	if err != nil {
		return nil, err
	}

	out := make([]node.Node, len(results))
	for i, child := range results {
		if n.Name != "" {
			if child.Name != "" {
				child.Name = n.Name + "." + child.Name
			} else {
				child.Name = n.Name
			}
		}
		child.Indent = n.Indent
		child.Source = n.Source
		child.Line = n.Line
		out[i] = child
	}
	return out, nil
}

// resolveValueImport fills n.Value directly from the single node path refers
// to (spec §4.4 Step 1: a value-position import resolves immediately rather
// than casting a literal), converting units when the declaration gave its
// own explicit unit expression.
func (ip *Interpreter) resolveValueImport(n *node.Node) error {
	results, err := ip.Request(n.ValueRaw, []int{1}, n.Pos())
	if err != nil {
		return err
	}
	target := results[0]

	if n.Units != "" && target.Units != "" && isNumericKind(target.Value.Kind()) {
		converted, err := units.Convert(numericOf(target.Value), target.Units, n.Units, ip.Units)
		if err != nil {
			return err
		}
		n.Value = numericLike(target.Value.Kind(), converted)
	} else {
		n.Value = target.Value
		if n.Units == "" {
			n.Units = target.Units
		}
	}
	n.IsImport = false
	return nil
}

// ResolveNode implements expr.Resolver: path is the import target written
// inside an expression's braces ("?name" for a node of this interpreter,
// "file?name" for a node of another file), accepting zero or one match and
// collapsing zero matches to "not found" rather than an error.
func (ip *Interpreter) ResolveNode(path string) (node.Node, bool, error) {
	results, err := ip.Request(path, []int{0, 1}, dpmlerrors.Position{Source: ip.source})
	if err != nil {
		return node.Node{}, false, err
	}
	if len(results) == 0 {
		return node.Node{}, false, nil
	}
	return results[0], true, nil
}

// UnitTable implements expr.Resolver.
func (ip *Interpreter) UnitTable() *units.Table {
	return ip.Units
}
