package filecache

import (
	"bytes"
	"encoding/binary"

	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
)

// flatNode is one DFS-flattened hierarchy.Node, with its parent recorded by
// index rather than pointer so the tree round-trips through a flat array.
type flatNode struct {
	ExpressID   uint32
	TypeName    uint32 // interned, via the STRINGS section's table
	Elevation   float64
	HasElev     uint8
	ParentIndex int32 // -1 for the root
	Elements    []uint32
}

// encodeSpatial flattens h's tree via DFS (root first) so a reader can
// rebuild it with a single linear pass. table is the same intern.Table
// persisted in the STRINGS section, so type names aren't duplicated.
func encodeSpatial(h *hierarchy.Hierarchy, table *intern.Table) []byte {
	var flat []flatNode
	if h.Root != nil {
		flatten(h.Root, -1, table, &flat)
	}

	var buf bytes.Buffer
	binary.Write(&buf, order, uint32(len(flat)))
	for _, n := range flat {
		binary.Write(&buf, order, n.ExpressID)
		binary.Write(&buf, order, n.TypeName)
		binary.Write(&buf, order, n.Elevation)
		binary.Write(&buf, order, n.HasElev)
		binary.Write(&buf, order, n.ParentIndex)
		binary.Write(&buf, order, uint32(len(n.Elements)))
		binary.Write(&buf, order, n.Elements)
	}
	return buf.Bytes()
}

func flatten(n *hierarchy.Node, parent int32, table *intern.Table, out *[]flatNode) {
	hasElev := uint8(0)
	if n.HasElev {
		hasElev = 1
	}
	idx := int32(len(*out))
	*out = append(*out, flatNode{
		ExpressID:   n.ExpressID,
		TypeName:    table.Intern(n.Type),
		Elevation:   n.Elevation,
		HasElev:     hasElev,
		ParentIndex: parent,
		Elements:    n.Elements,
	})
	for _, c := range n.Children {
		flatten(c, idx, table, out)
	}
}

// decodeSpatial rebuilds the Node tree (Root plus Children links) from a
// flat payload. It does not repopulate Hierarchy's inverse lookup maps:
// those are cheap to rebuild from the decoded store+graph via
// hierarchy.Build, which callers should prefer when both are available.
func decodeSpatial(payload []byte, table *intern.Table) (*hierarchy.Node, error) {
	r := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(r, order, &count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	nodes := make([]*hierarchy.Node, count)
	parents := make([]int32, count)
	for i := uint32(0); i < count; i++ {
		var expressID, typeName uint32
		var elevation float64
		var hasElev uint8
		var parentIndex int32
		var elemCount uint32
		if err := binary.Read(r, order, &expressID); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &typeName); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &elevation); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &hasElev); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &parentIndex); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &elemCount); err != nil {
			return nil, err
		}
		elements := make([]uint32, elemCount)
		if err := binary.Read(r, order, elements); err != nil {
			return nil, err
		}
		nodes[i] = &hierarchy.Node{
			ExpressID: expressID,
			Type:      table.Get(typeName),
			Elevation: elevation,
			HasElev:   hasElev == 1,
			Elements:  elements,
		}
		parents[i] = parentIndex
	}

	var root *hierarchy.Node
	for i, n := range nodes {
		if parents[i] < 0 {
			root = n
			continue
		}
		parent := nodes[parents[i]]
		parent.Children = append(parent.Children, n)
	}
	return root, nil
}
