package units

// Built-in unit tables. Magnitudes and base vectors below are pre-rebased
// (decimal slot already folded in) so the table can be built without a
// bootstrapping pass through the expression parser. Base dimension order is
// [Length, Mass, Time, Temperature, Charge, Luminosity, Amount, Angle, Decimal].

func vec(length, mass, time, temperature, charge, luminosity, amount, angle, decimal int) Vector {
	return Vector{length, mass, time, temperature, charge, luminosity, amount, angle, decimal}
}

// baseUnits are the eight physical base dimensions. Mass is grams, not
// kilograms, so that "kg" is simply the prefix "k" applied to "g" (matching
// the original implementation's N = k*g*m/s2 construction).
var baseUnits = map[string]Unit{
	"m":   {Magnitude: 1, Base: vec(1, 0, 0, 0, 0, 0, 0, 0, 0), Symbol: "m", Name: "meter"},
	"g":   {Magnitude: 1, Base: vec(0, 1, 0, 0, 0, 0, 0, 0, 0), Symbol: "g", Name: "gram"},
	"s":   {Magnitude: 1, Base: vec(0, 0, 1, 0, 0, 0, 0, 0, 0), Symbol: "s", Name: "second"},
	"K":   {Magnitude: 1, Base: vec(0, 0, 0, 1, 0, 0, 0, 0, 0), Symbol: "K", Name: "kelvin"},
	"C":   {Magnitude: 1, Base: vec(0, 0, 0, 0, 1, 0, 0, 0, 0), Symbol: "C", Name: "coulomb"},
	"cd":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 1, 0, 0, 0), Symbol: "cd", Name: "candela"},
	"mol": {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 1, 0, 0), Symbol: "mol", Name: "mole"},
	"rad": {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 1, 0), Symbol: "rad", Name: "radian"},
}

// siPrefixes are standard SI decimal prefixes, each a pure decimal-slot shift.
var siPrefixes = map[string]Unit{
	"Y":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 24), Symbol: "Y", Name: "yotta"},
	"Z":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 21), Symbol: "Z", Name: "zetta"},
	"E":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 18), Symbol: "E", Name: "exa"},
	"P":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 15), Symbol: "P", Name: "peta"},
	"T":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 12), Symbol: "T", Name: "tera"},
	"G":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 9), Symbol: "G", Name: "giga"},
	"M":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 6), Symbol: "M", Name: "mega"},
	"k":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 3), Symbol: "k", Name: "kilo"},
	"h":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 2), Symbol: "h", Name: "hecto"},
	"da": {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 1), Symbol: "da", Name: "deca"},
	"d":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -1), Symbol: "d", Name: "deci"},
	"c":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -2), Symbol: "c", Name: "centi"},
	"m_": {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -3), Symbol: "m", Name: "milli"},
	"u":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -6), Symbol: "u", Name: "micro"},
	"n":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -9), Symbol: "n", Name: "nano"},
	"p":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -12), Symbol: "p", Name: "pico"},
	"f":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -15), Symbol: "f", Name: "femto"},
	"a":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -18), Symbol: "a", Name: "atto"},
	"z":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -21), Symbol: "z", Name: "zepto"},
	"y":  {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -24), Symbol: "y", Name: "yocto"},
}

// prefixSymbols maps the symbol that actually appears in source text to its
// siPrefixes key; "milli" collides with the base "m" (meter) symbol, so it is
// stored internally under "m_" and only matched as a prefix when the
// remainder of the token (after stripping a known unit suffix) is "m".
var prefixSymbols = map[string]string{
	"Y": "Y", "Z": "Z", "E": "E", "P": "P", "T": "T", "G": "G", "M": "M",
	"k": "k", "h": "h", "da": "da", "d": "d", "c": "c", "m": "m_",
	"u": "u", "n": "n", "p": "p", "f": "f", "a": "a", "z": "z", "y": "y",
}

// derivedUnits are named units expressible as a product of base units.
// Definition is documentation only (the informational expression a reader
// would use to derive the same vector); the vectors themselves are computed
// ahead of time to avoid a bootstrapping dependency on the expression parser.
var derivedUnits = map[string]Unit{
	"Hz":  {Magnitude: 1, Base: vec(0, 0, -1, 0, 0, 0, 0, 0, 0), Symbol: "Hz", Name: "hertz", Definition: "s-1"},
	"N":   {Magnitude: 1, Base: vec(1, 1, -2, 0, 0, 0, 0, 0, 3), Symbol: "N", Name: "newton", Definition: "kg*m/s2"},
	"Pa":  {Magnitude: 1, Base: vec(-1, 1, -2, 0, 0, 0, 0, 0, 3), Symbol: "Pa", Name: "pascal", Definition: "kg/(s2*m)"},
	"J":   {Magnitude: 1, Base: vec(2, 1, -2, 0, 0, 0, 0, 0, 3), Symbol: "J", Name: "joule", Definition: "(kg*m2)/s2"},
	"W":   {Magnitude: 1, Base: vec(2, 1, -3, 0, 0, 0, 0, 0, 3), Symbol: "W", Name: "watt", Definition: "kg*(m2/s3)"},
	"A":   {Magnitude: 1, Base: vec(0, 0, -1, 0, 1, 0, 0, 0, 0), Symbol: "A", Name: "ampere", Definition: "C*s-1"},
	"V":   {Magnitude: 1, Base: vec(2, 1, -2, 0, -1, 0, 0, 0, 3), Symbol: "V", Name: "volt", Definition: "kg*(m2/(s2*C))"},
	"Ohm": {Magnitude: 1, Base: vec(2, 1, -1, 0, -2, 0, 0, 0, 3), Symbol: "Ohm", Name: "ohm", Definition: "((kg*m2)/s)/C2"},
	"S":   {Magnitude: 1, Base: vec(-2, -1, 1, 0, 2, 0, 0, 0, -3), Symbol: "S", Name: "siemens", Definition: "s*C2/kg/m2"},
	"deg": {Magnitude: 1.745329252, Base: vec(0, 0, 0, 0, 0, 0, 0, 1, -2), Symbol: "deg", Name: "degree", Definition: "2*[pi]*rad/360"},
	"erg": {Magnitude: 1, Base: vec(2, 1, -2, 0, 0, 0, 0, 0, -4), Symbol: "erg", Name: "erg", Definition: "g*cm2/s2"},
	"eV":  {Magnitude: 1.602176634, Base: vec(2, 1, -2, 0, 0, 0, 0, 0, -16), Symbol: "eV", Name: "electronvolt", Definition: "[e]*V"},
	"%":   {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -2), Symbol: "%", Name: "percent"},
}

// namedConstants are bracketed dimensionless symbols, matched as a whole
// token (never combined with a prefix or exponent).
var namedConstants = map[string]Unit{
	"[pi]":   {Magnitude: 3.14159265, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, 0), Symbol: "[pi]", Name: "pi"},
	"[e]":    {Magnitude: 1.602176634, Base: vec(0, 0, 0, 0, 1, 0, 0, 0, -19), Symbol: "[e]", Name: "elementary charge"},
	"[ppth]": {Magnitude: 1, Base: vec(0, 0, 0, 0, 0, 0, 0, 0, -3), Symbol: "[ppth]", Name: "per mille"},
}

// arbitraryUnits are units whose conversion to a linear unit of the same
// physical dimension requires an affine transform rather than a
// multiplicative factor (spec §4.5.5).
var arbitraryUnits = map[string]Unit{
	"Cel":  {Magnitude: 1, Base: vec(0, 0, 0, 1, 0, 0, 0, 0, 0), Symbol: "Cel", Name: "celsius", Arbitrary: true},
	"degF": {Magnitude: 1, Base: vec(0, 0, 0, 1, 0, 0, 0, 0, 0), Symbol: "degF", Name: "fahrenheit", Arbitrary: true},
}

// arbitraryConverters are keyed by SymbolBase (the unit symbol with any
// prefix stripped).
var arbitraryConverters = map[string]ArbitraryConverter{
	"Cel":  Affine{Scale: 1, Offset: 273.15},
	"degF": Affine{Scale: 5.0 / 9.0, Offset: 273.15 - 32*5.0/9.0},
}
