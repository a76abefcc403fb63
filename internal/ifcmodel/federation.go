package ifcmodel

import (
	"sync"

	"github.com/google/uuid"
)

// FederationEntry records the express-ID offset window reserved for one
// federated model. The entry is bookkeeping only: the entities and meshes
// of the loaded Model keep their source-file express ids, unshifted by
// Offset.
type FederationEntry struct {
	ModelID      uuid.UUID
	Offset       uint32
	MaxExpressID uint32
}

// FederationTable hands out non-overlapping express-ID offset windows
// across successive LoadModel calls. It does not merge models or rewrite
// their ids, and it is looked up by model id (EntryFor); there is no lookup
// from a global id back to a model and express id.
type FederationTable struct {
	mu      sync.Mutex
	entries []FederationEntry
	next    uint32
}

func NewFederationTable() *FederationTable {
	return &FederationTable{}
}

// Reserve allocates the next offset window, sized to cover every express
// ID a source file might use (maxExpressID), and records the mapping under
// modelID for later lookup.
func (f *FederationTable) Reserve(modelID uuid.UUID, maxExpressID uint32) FederationEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := FederationEntry{ModelID: modelID, Offset: f.next, MaxExpressID: maxExpressID}
	f.entries = append(f.entries, entry)
	f.next += maxExpressID + 1
	return entry
}

// Entries returns every reservation made so far, in reservation order.
func (f *FederationTable) Entries() []FederationEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FederationEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// EntryFor looks up the offset window reserved for modelID.
func (f *FederationTable) EntryFor(modelID uuid.UUID) (FederationEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ModelID == modelID {
			return e, true
		}
	}
	return FederationEntry{}, false
}
