package gosdml

// BaseType is the storage kind of a value. The numbering and the names in
// TypeNames are part of the wire and schema vocabulary and must not change.
type BaseType uint8

const (
	Empty   BaseType = iota // Not a type (unset).
	Int1                    // Single byte signed integer.
	Int2                    // Two byte signed integer.
	Int4                    // Four byte signed integer.
	Int8                    // Eight byte signed integer.
	Single                  // IEEE-754 single precision, 4 bytes.
	Double                  // IEEE-754 double precision, 8 bytes.
	Char                    // Single byte character.
	Bool                    // Single byte boolean.
	WChar                   // Two byte character.
	String                  // Length-prefixed single byte string.
	WString                 // Length-prefixed two byte string.
	Defined                 // Record (or array of records).
)

// TypeNames maps every BaseType to its schema kind token. The zero entry is
// unused.
var TypeNames = [...]string{
	Empty:   "",
	Int1:    "integer1",
	Int2:    "integer2",
	Int4:    "integer4",
	Int8:    "integer8",
	Single:  "single",
	Double:  "double",
	Char:    "char",
	Bool:    "boolean",
	WChar:   "wchar",
	String:  "string",
	WString: "wstring",
	Defined: "defined",
}

// typeSizes holds the fixed byte width of each scalar kind; strings and
// records have no fixed width.
var typeSizes = [...]int{
	Int1:   1,
	Int2:   2,
	Int4:   4,
	Int8:   8,
	Single: 4,
	Double: 8,
	Char:   1,
	Bool:   1,
	WChar:  2,
}

// String returns the kind token ("double", "integer4", ...).
func (bt BaseType) String() string {
	if int(bt) < len(TypeNames) {
		return TypeNames[bt]
	}
	return ""
}

// Size returns the fixed byte width of the kind, or 0 for strings, records
// and Empty.
func (bt BaseType) Size() int {
	if int(bt) < len(typeSizes) {
		return typeSizes[bt]
	}
	return 0
}

// IsInteger reports Int1..Int8.
func (bt BaseType) IsInteger() bool { return bt >= Int1 && bt <= Int8 }

// IsFloat reports Single and Double.
func (bt BaseType) IsFloat() bool { return bt == Single || bt == Double }

// IsNumeric reports the integer and floating kinds, the only kinds that carry
// units.
func (bt BaseType) IsNumeric() bool { return bt >= Int1 && bt <= Double }

// IsString reports the two variable-length kinds.
func (bt BaseType) IsString() bool { return bt == String || bt == WString }

// IsText reports the character and string kinds.
func (bt BaseType) IsText() bool {
	return bt == Char || bt == WChar || bt == String || bt == WString
}

// ParseBaseType maps a kind token to its BaseType. The empty token yields
// Empty with ok true; unknown tokens yield ok false.
func ParseBaseType(name string) (BaseType, bool) {
	if name == "" {
		return Empty, true
	}
	for i := Defined; i > Empty; i-- {
		if TypeNames[i] == name {
			return i, true
		}
	}
	return Empty, false
}

// Rank is the outcome of CanAssignFrom.
type Rank int

const (
	Bad        Rank = -1 // Incompatible.
	Same       Rank = 0  // Identical type.
	Compatible Rank = 1  // Convertible without loss of meaning.
	Dodgy      Rank = 2  // Convertible through text; legacy concession.
)

func (r Rank) String() string {
	switch r {
	case Same:
		return "SAME"
	case Compatible:
		return "COMPATIBLE"
	case Dodgy:
		return "DODGY"
	default:
		return "BAD"
	}
}

// LoadOpt bounds schema documents read by FromSchema and ValidateSchema.
// Zero values disable a limit.
type LoadOpt struct {
	MaxDepth int
	MaxBytes int64
}

// TextOpt controls the SDML/DDML writers. Indent < 0 writes everything on
// one line.
type TextOpt struct {
	Indent int
	Tab    int
}
