// Package interp implements I, the DPML interpreter core (spec §4.4): the
// work-queue-driven pass that turns a classified node stream into the
// finalized result list R and custom-unit table X. It is the only package
// that imports internal/interp/expr ("@case" guards and the public
// Expression entry point) without being imported back by it, keeping that dependency
// one-directional.
package interp

import (
	"strings"

	"github.com/vrtulka23/dpml/internal/node"
	"github.com/vrtulka23/dpml/internal/units"
)

// Reader supplies file contents for imports, matching spec §6's
// Reader(path) → string contract.
type Reader interface {
	Read(path string) (string, error)
}

// DefaultMaxImportDepth bounds import recursion (spec §5): past this many
// nested file imports, resolution fails IMPORT_CYCLE_OR_DEPTH instead of
// growing the host stack without limit.
const DefaultMaxImportDepth = 64

// Interpreter holds one parse's state (spec §4.4: "state, reset per
// initialize"). It is not safe for concurrent use; each independent parse
// gets its own instance.
type Interpreter struct {
	reader   Reader
	depth    int
	maxDepth int
	source   string
	buf      strings.Builder

	R     []node.Node
	Units *units.Table

	indentStack []int
	parentStack []string
	caseNames   []string
	caseCounts  []int
	queue       []node.Node
}

// New builds an empty interpreter reading files through reader.
func New(reader Reader) *Interpreter {
	return &Interpreter{
		reader:   reader,
		maxDepth: DefaultMaxImportDepth,
		source:   "inline",
		Units:    units.NewTable(),
	}
}

// NewFromText builds an interpreter with code already queued for Initialize.
func NewFromText(reader Reader, code string) *Interpreter {
	ip := New(reader)
	ip.buf.WriteString(code)
	return ip
}

// Load appends a file's contents to the pending source buffer (spec §6
// `load(path)`); later loads append, they don't reset earlier ones. Like the
// reference implementation, only the most recently loaded path is kept as
// the provenance label for every line across the whole buffer.
func (ip *Interpreter) Load(path string) error {
	content, err := ip.reader.Read(path)
	if err != nil {
		return err
	}
	if ip.buf.Len() > 0 {
		ip.buf.WriteString("\n")
	}
	ip.buf.WriteString(content)
	ip.source = path
	return nil
}

// Use seeds state from another instance's finalized output, for local
// queries against already-parsed nodes (spec §6 `use(nodes, units)`).
func (ip *Interpreter) Use(nodes []node.Node, table *units.Table) {
	ip.R = nodes
	ip.Units = table
}

// Initialize runs B, L/N, and I to completion (spec §6 `initialize()`).
func (ip *Interpreter) Initialize() error {
	folded, err := node.FoldBlocks(ip.buf.String(), ip.source)
	if err != nil {
		return err
	}

	ip.R = nil
	ip.Units = units.NewTable()
	ip.indentStack = []int{-1}
	ip.parentStack = nil
	ip.caseNames = []string{""}
	ip.caseCounts = []int{0}

	queue := make([]node.Node, 0, len(folded))
	for _, fl := range folded {
		n, err := node.ParseLine(fl.Text, ip.source, fl.StartLine)
		if err != nil {
			return err
		}
		queue = append(queue, n)
	}
	ip.queue = queue

	for len(ip.queue) > 0 {
		n := ip.queue[0]
		ip.queue = ip.queue[1:]

		expansion, resolved, err := ip.preparse(&n)
		if err != nil {
			return err
		}
		if len(expansion) > 0 {
			ip.queue = append(expansion, ip.queue...)
			continue
		}

		if n.Name != "" {
			ip.applyNaming(&n)
		}

		if err := ip.dispatch(n, resolved); err != nil {
			return err
		}
	}

	return nil
}

// applyNaming is Step 2 (spec §4.4): pop the indent/parent stacks while this
// node's indent doesn't sit strictly deeper than the current top, push this
// node's own short name, then flatten the stack into the node's final
// dotted name.
func (ip *Interpreter) applyNaming(n *node.Node) {
	for n.Indent <= ip.indentStack[len(ip.indentStack)-1] {
		ip.indentStack = ip.indentStack[:len(ip.indentStack)-1]
		ip.parentStack = ip.parentStack[:len(ip.parentStack)-1]
	}
	ip.parentStack = append(ip.parentStack, n.Name)
	ip.indentStack = append(ip.indentStack, n.Indent)
	n.Name = strings.Join(ip.parentStack, ".")
}

// preparse is Step 1: each node kind gets a chance to expand into a
// replacement list (imports, tables) or resolve in place (value imports,
// case-expression evaluation, unit definitions). resolved reports that
// Value was already filled in directly and Step 3 should skip casting.
func (ip *Interpreter) preparse(n *node.Node) (expansion []node.Node, resolved bool, err error) {
	switch n.Kind {
	case node.KindImport:
		expansion, err = ip.expandImport(*n)
		return expansion, false, err

	case node.KindTable:
		expansion, err = ip.expandTable(*n)
		return expansion, false, err

	case node.KindUnit:
		return nil, false, ip.registerUnit(*n)

	case node.KindMod, node.KindBool, node.KindInt, node.KindFloat, node.KindStr:
		// Nodes produced by a table or import expansion already carry their
		// final Value.
		if !n.Value.IsNull() {
			return nil, true, nil
		}
		if n.IsImport {
			if err := ip.resolveValueImport(n); err != nil {
				return nil, false, err
			}
			return nil, true, nil
		}
		return nil, false, nil

	case node.KindCondition:
		if strings.HasSuffix(n.Name, "@case") {
			if err := ip.evalCaseExpr(n); err != nil {
				return nil, false, err
			}
		}
		return nil, false, nil
	}
	return nil, false, nil
}

// dispatch is Step 3.
func (ip *Interpreter) dispatch(n node.Node, resolved bool) error {
	switch n.Kind {
	case node.KindOption:
		return ip.attachOption(n)
	case node.KindEmpty, node.KindGroup, node.KindUnit:
		return nil
	case node.KindCondition:
		return ip.dispatchCondition(n)
	default:
		return ip.dispatchValue(n, resolved)
	}
}

func (ip *Interpreter) findNode(name string) int {
	for i := range ip.R {
		if ip.R[i].Name == name {
			return i
		}
	}
	return -1
}
