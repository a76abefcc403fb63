// Package rawmodel holds the decoded-but-not-yet-columnar entity
// attributes that the placement resolver, spatial hierarchy, and geometry
// processor walk directly by expressId — the raw cross-link graph
// described in spec §9 ("back-reference-heavy object graphs ... store
// everything by expressId and resolve through ... lookup").
package rawmodel

import "github.com/arx-os/ifclite/internal/decode"

// Entity is one decoded STEP form: its type name and attribute values in
// schema-declared order.
type Entity struct {
	ExpressID uint32
	TypeName  string
	Values    []decode.Value
}

// Store indexes decoded entities by expressId and by type name.
type Store struct {
	entities map[uint32]Entity
	byType   map[string][]uint32
}

func NewStore() *Store {
	return &Store{
		entities: make(map[uint32]Entity),
		byType:   make(map[string][]uint32),
	}
}

// Add records a decoded entity. Monotone: intended to be called once per
// expressId during the decode pass.
func (s *Store) Add(e Entity) {
	s.entities[e.ExpressID] = e
	s.byType[e.TypeName] = append(s.byType[e.TypeName], e.ExpressID)
}

func (s *Store) Entity(id uint32) (Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// ByType returns every decoded entity of typeName (uppercase canonical).
func (s *Store) ByType(typeName string) []Entity {
	ids := s.byType[typeName]
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.entities[id])
	}
	return out
}

func (s *Store) Len() int { return len(s.entities) }
