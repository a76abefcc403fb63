// Package schema is the static, code-generated-style EXPRESS schema
// registry (C4). It is read-only and process-wide once initialized: for
// each entity type it exposes the canonical name, abstract flag, direct
// supertype, ordered local attributes, the flattened inherited attribute
// list, and the inheritance chain.
package schema

import "strings"

// Aggregation names the aggregation kind of an attribute.
type Aggregation int

const (
	AggNone Aggregation = iota
	AggList
	AggArray
	AggSet
)

// Attr is one entity attribute as declared by the EXPRESS schema.
type Attr struct {
	Name     string
	Type     string // primitive name, entity name, or SELECT/ENUM name
	Optional bool
	Agg      Aggregation
	Lo, Hi   int // aggregation bounds; Hi == -1 means unbounded
	Nested   Aggregation // nested aggregation kind for LIST OF LIST OF ...
}

// EntityDef describes one ENTITY declaration.
type EntityDef struct {
	Name       string
	Abstract   bool
	Supertype  string // "" for root entities (IfcRoot has none)
	Attributes []Attr // local attributes only, declaration order
}

// Registry is the read-only, process-wide schema table.
type Registry struct {
	entities map[string]*EntityDef
	enums    map[string][]string
	selects  map[string][]string
}

var global = build()

// Global returns the process-wide registry instance.
func Global() *Registry { return global }

// Canonical normalizes a type name to uppercase for lookup, matching the
// STEP tokenizer's own uppercasing (spec §4.2: "IFCXXX" lookup form).
func Canonical(name string) string {
	return strings.ToUpper(name)
}

// Lookup returns the EntityDef for name (case-insensitive), if known.
func (r *Registry) Lookup(name string) (*EntityDef, bool) {
	d, ok := r.entities[Canonical(name)]
	return d, ok
}

// AllAttributes returns the inherited chain flattened: root first, then
// each supertype in order, then this entity's own local attributes last.
func (r *Registry) AllAttributes(name string) []Attr {
	chain := r.InheritanceChain(name)
	var all []Attr
	for _, n := range chain {
		if d, ok := r.entities[n]; ok {
			all = append(all, d.Attributes...)
		}
	}
	return all
}

// InheritanceChain returns [root, ..., self] for name.
func (r *Registry) InheritanceChain(name string) []string {
	var chain []string
	cur := Canonical(name)
	for cur != "" {
		d, ok := r.entities[cur]
		if !ok {
			break
		}
		chain = append([]string{cur}, chain...)
		cur = d.Supertype
	}
	return chain
}

// LocalAttributeCount returns the number of attributes name declares
// itself, excluding anything inherited from a supertype.
func (r *Registry) LocalAttributeCount(name string) (int, bool) {
	d, ok := r.Lookup(name)
	if !ok {
		return 0, false
	}
	return len(d.Attributes), true
}

// AttributeCount returns the full flattened attribute count (inherited +
// own) for name — the arity a STEP instance line of this type must carry,
// since EXPRESS instances always supply every attribute in the full
// inheritance chain (spec §4.3).
func (r *Registry) AttributeCount(name string) (int, bool) {
	if _, ok := r.Lookup(name); !ok {
		return 0, false
	}
	return len(r.AllAttributes(name)), true
}

// AttributeIndex returns the position of attrName within name's full
// flattened (root-first) attribute list — the index to use against a
// decode.Value slice returned by decode.Decode for an instance of name.
func (r *Registry) AttributeIndex(name, attrName string) (int, bool) {
	for i, a := range r.AllAttributes(name) {
		if a.Name == attrName {
			return i, true
		}
	}
	return 0, false
}

// EnumValues returns the ordered values of an ENUM type.
func (r *Registry) EnumValues(name string) ([]string, bool) {
	v, ok := r.enums[Canonical(name)]
	return v, ok
}

// SelectMembers returns the ordered member type list of a SELECT type.
func (r *Registry) SelectMembers(name string) ([]string, bool) {
	v, ok := r.selects[Canonical(name)]
	return v, ok
}
