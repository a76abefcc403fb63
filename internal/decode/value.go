// Package decode implements the entity attribute decoder (C3): given an
// entity's raw argument-list bytes and its schema arity, decodes the
// comma-separated argument list into the tagged-union AttributeValue
// defined in spec §3.
package decode

// Kind discriminates the tagged union.
type Kind int

const (
	KindNull Kind = iota
	KindReal
	KindInteger
	KindBool
	KindLogical // bool or unknown (logical null)
	KindString
	KindEnum
	KindRef
	KindList
)

// Value is the tagged attribute value. Exactly one payload field is valid
// for a given Kind.
type Value struct {
	Kind    Kind
	Real    float64
	Int     int64
	Bool    bool
	Unknown bool   // true when Kind==KindLogical and the value is ".U."
	Str     uint32 // interned string index, valid for KindString/KindEnum
	Ref     uint32 // express id, valid for KindRef
	List    []Value
	// TypeWrapper carries the wrapping type name for a SELECT-disambiguating
	// TYPE(value) form, retained only when present (spec §4.3).
	TypeWrapper string
}

func Null() Value                 { return Value{Kind: KindNull} }
func Real(f float64) Value        { return Value{Kind: KindReal, Real: f} }
func Integer(i int64) Value       { return Value{Kind: KindInteger, Int: i} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func LogicalUnknown() Value       { return Value{Kind: KindLogical, Unknown: true} }
func Logical(b bool) Value        { return Value{Kind: KindLogical, Bool: b} }
func String(idx uint32) Value     { return Value{Kind: KindString, Str: idx} }
func Enum(idx uint32) Value       { return Value{Kind: KindEnum, Str: idx} }
func Ref(id uint32) Value         { return Value{Kind: KindRef, Ref: id} }
func List(items []Value) Value    { return Value{Kind: KindList, List: items} }

func (v Value) IsNull() bool { return v.Kind == KindNull }
