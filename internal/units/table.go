package units

import (
	"fmt"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
)

// Table is the full set of units known to an interpreter run: the built-in
// base/prefix/derived/arbitrary tables plus whatever custom units a source
// file registered with a `NAME@unit` declaration (spec §4.5.4).
type Table struct {
	Base       map[string]Unit
	Prefixes   map[string]Unit
	Derived    map[string]Unit
	Constants  map[string]Unit
	Arbitrary  map[string]Unit
	Custom     map[string]Unit
	Converters map[string]ArbitraryConverter
}

// NewTable builds a Table pre-populated with every built-in unit.
func NewTable() *Table {
	return &Table{
		Base:       cloneMap(baseUnits),
		Prefixes:   cloneMap(siPrefixes),
		Derived:    cloneMap(derivedUnits),
		Constants:  cloneMap(namedConstants),
		Arbitrary:  cloneMap(arbitraryUnits),
		Custom:     map[string]Unit{},
		Converters: cloneConverters(arbitraryConverters),
	}
}

func cloneMap(src map[string]Unit) map[string]Unit {
	dst := make(map[string]Unit, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneConverters(src map[string]ArbitraryConverter) map[string]ArbitraryConverter {
	dst := make(map[string]ArbitraryConverter, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// All returns every named unit known to the table (base, derived, arbitrary,
// and custom), keyed by the symbol a source file would spell. Prefixes and
// bracketed constants are not included; splitPrefix/ParseToken handle those
// separately since they are never matched as a standalone base symbol.
func (t *Table) All() map[string]Unit {
	out := make(map[string]Unit, len(t.Base)+len(t.Derived)+len(t.Arbitrary)+len(t.Custom))
	for k, v := range t.Base {
		out[k] = v
	}
	for k, v := range t.Derived {
		out[k] = v
	}
	for k, v := range t.Arbitrary {
		out[k] = v
	}
	for k, v := range t.Custom {
		out[k] = v
	}
	return out
}

// RegisterCustom adds a prefixable custom unit symbol to the table (spec
// §4.5.4). Re-registering an existing symbol under a different definition is
// rejected with DuplicateUnit; re-registering the identical unit is a no-op.
func (t *Table) RegisterCustom(symbol string, u Unit, pos dpmlerrors.Position) error {
	if existing, ok := t.lookupAny(symbol); ok {
		if Equal(existing, u) {
			return nil
		}
		return dpmlerrors.Newf(dpmlerrors.DuplicateUnit, pos,
			"unit %q is already defined", symbol)
	}
	u.Symbol = symbol
	u.SymbolBase = symbol
	t.Custom[symbol] = u
	if u.Arbitrary {
		t.Converters[symbol] = Linear{}
	}
	return nil
}

// RegisterConstant adds a source-defined named unit (spec §4.4 unit-def hook:
// "push the composite into X under a symbol of form `[name]`"), looked up the
// same way as the built-in bracket constants ([pi], [e]) rather than as a
// prefixable symbol.
func (t *Table) RegisterConstant(name string, u Unit, pos dpmlerrors.Position) error {
	key := "[" + name + "]"
	if existing, ok := t.Constants[key]; ok {
		if Equal(existing, u) {
			return nil
		}
		return dpmlerrors.Newf(dpmlerrors.DuplicateUnit, pos, "unit %q is already defined", key)
	}
	u.Symbol = key
	u.SymbolBase = key
	t.Constants[key] = u
	return nil
}

func (t *Table) lookupAny(symbol string) (Unit, bool) {
	if u, ok := t.Base[symbol]; ok {
		return u, true
	}
	if u, ok := t.Derived[symbol]; ok {
		return u, true
	}
	if u, ok := t.Arbitrary[symbol]; ok {
		return u, true
	}
	if u, ok := t.Custom[symbol]; ok {
		return u, true
	}
	if u, ok := t.Constants[symbol]; ok {
		return u, true
	}
	return Unit{}, false
}

// converterFor returns the ArbitraryConverter registered for a unit's base
// symbol, defaulting to Linear for units that never carry an affine offset.
func (t *Table) converterFor(symbolBase string) ArbitraryConverter {
	if c, ok := t.Converters[symbolBase]; ok {
		return c
	}
	return Linear{}
}

func (t *Table) String() string {
	return fmt.Sprintf("Table{base=%d derived=%d arbitrary=%d custom=%d}",
		len(t.Base), len(t.Derived), len(t.Arbitrary), len(t.Custom))
}
