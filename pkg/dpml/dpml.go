// Package dpml is the public, stable API surface for the DPML language
// (spec §6): construct an instance, feed it source text or files, run it to
// completion, then query, render, or dump its result.
package dpml

import (
	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/interp"
	"github.com/vrtulka23/dpml/internal/node"
	"github.com/vrtulka23/dpml/internal/query"
	"github.com/vrtulka23/dpml/internal/template"
	"github.com/vrtulka23/dpml/internal/units"
)

// DPML wraps one interpreter instance and exposes the operations named in
// spec §6, naming them to match that table rather than the Go-idiomatic
// capitalized internal method names they delegate to.
type DPML struct {
	ip     *interp.Interpreter
	reader Reader
}

// New builds an empty instance reading imports and template files through
// reader (spec §6 `new_empty()`). A nil reader falls back to FileReader.
func New(reader Reader) *DPML {
	if reader == nil {
		reader = FileReader{}
	}
	return &DPML{ip: interp.New(reader), reader: reader}
}

// NewFromText builds an instance with code already queued for Initialize
// (spec §6 `new_from_text(code)`).
func NewFromText(reader Reader, code string) *DPML {
	d := New(reader)
	d.ip = interp.NewFromText(d.reader, code)
	return d
}

// Load appends a file's contents to the pending source buffer (spec §6
// `load(path)`).
func (d *DPML) Load(path string) error {
	return d.ip.Load(path)
}

// Initialize runs phases B, L/N, I to completion (spec §6 `initialize()`).
func (d *DPML) Initialize() error {
	return d.ip.Initialize()
}

// Use seeds this instance's result list and unit table from another
// instance's finalized output, for local queries without reparsing (spec §6
// `use(nodes, units)`).
func (d *DPML) Use(nodes []node.Node, table *units.Table) {
	d.ip.Use(nodes, table)
}

// Nodes returns the finalized result list, for callers that need direct
// access (e.g. to pass into another instance's Use).
func (d *DPML) Nodes() []node.Node {
	return d.ip.R
}

// UnitTable returns the unit table built up by unit definitions during this
// instance's Initialize, for passing into another instance's Use.
func (d *DPML) UnitTable() *units.Table {
	return d.ip.Units
}

// Query applies q ("*", "prefix.*", or an exact dotted path) against the
// finalized result list (spec §6 `query(q) → nodes`).
func (d *DPML) Query(q string) []node.Node {
	return query.Run(d.ip.R, q)
}

// Request resolves path ("?query" against local nodes, or "file[?query]") with an
// optional cardinality check; counts empty means "any count" (spec §6
// `request(path, count?) → nodes`).
func (d *DPML) Request(path string, counts ...int) ([]node.Node, error) {
	return d.ip.Request(path, counts, dpmlerrors.Position{Source: "request"})
}

// Expression evaluates a boolean expression against this instance's result
// list and unit table (spec §6 `expression(expr) → bool`).
func (d *DPML) Expression(expr string) (bool, error) {
	return d.ip.Expression(expr)
}

// Template renders tpl, treating it as a file path first and falling back
// to treating it as literal template text (spec §6 `template(tpl_or_path,
// out_path?) → string`); when outPath is non-empty the rendered text is
// also written through writer.
func (d *DPML) Template(tplOrPath string, outPath string, writer Writer) (string, error) {
	tpl := tplOrPath
	source := "template"
	if d.reader != nil {
		if content, err := d.reader.Read(tplOrPath); err == nil {
			tpl, source = content, tplOrPath
		}
	}

	out, err := template.Render(tpl, d.ip, source)
	if err != nil {
		return "", err
	}

	if outPath != "" {
		if writer == nil {
			writer = FileWriter{}
		}
		if err := writer.Write(outPath, out); err != nil {
			return "", err
		}
	}
	return out, nil
}

// Data returns a flat name → value map of the finalized result list (spec
// §6 `data() → map<name, value>`).
func (d *DPML) Data() map[string]node.Value {
	out := make(map[string]node.Value, len(d.ip.R))
	for _, n := range d.ip.R {
		out[n.Name] = n.Value
	}
	return out
}

// Display writes a human-readable, diagnostic-only dump of every result
// node, one line each: name | indent | keyword | value | units, with a
// trailing " | options" when options are set. This mirrors the reference
// implementation's display() exactly.
func (d *DPML) Display() string {
	return display(d.ip.R)
}
