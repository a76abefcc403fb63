package filecache

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/store"
)

var order = binary.LittleEndian

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, order, uint32(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// encodeStrings serializes every interned string, index-ordered, so the
// reader can rebuild an equivalent intern.Table by re-interning them in
// the same order.
func encodeStrings(table *intern.Table) []byte {
	var buf bytes.Buffer
	all := table.All()
	binary.Write(&buf, order, uint32(len(all)))
	for _, s := range all {
		writeString(&buf, s)
	}
	return buf.Bytes()
}

func decodeStrings(payload []byte) (*intern.Table, error) {
	r := bytes.NewReader(payload)
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	table := intern.New()
	for i := uint32(0); i < n; i++ {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		table.Intern(s)
	}
	return table, nil
}

// encodeEntities serializes the type table's names (in enum order) followed
// by every entity row, already sorted by (TypeEnum, ExpressID) in memory.
func encodeEntities(entities *store.EntityTable) []byte {
	var buf bytes.Buffer
	rows := entities.All()
	names := entities.Types().Names()

	binary.Write(&buf, order, uint32(len(names)))
	for _, n := range names {
		writeString(&buf, n)
	}

	binary.Write(&buf, order, uint32(len(rows)))
	binary.Write(&buf, order, rows)
	return buf.Bytes()
}

func decodeEntities(payload []byte) (*store.EntityTable, *store.TypeTable, error) {
	r := bytes.NewReader(payload)

	var numNames uint32
	if err := binary.Read(r, order, &numNames); err != nil {
		return nil, nil, err
	}
	types := store.NewTypeTable()
	for i := uint32(0); i < numNames; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, nil, err
		}
		types.EnumFor(name)
	}

	var numRows uint32
	if err := binary.Read(r, order, &numRows); err != nil {
		return nil, nil, err
	}
	rows := make([]store.EntityRow, numRows)
	if err := binary.Read(r, order, rows); err != nil {
		return nil, nil, err
	}

	b := store.NewEntityBuilder(types)
	for _, row := range rows {
		b.Add(row)
	}
	return b.Build(), types, nil
}

func encodeProperties(props *store.PropertyTable) []byte {
	var buf bytes.Buffer
	n := props.Len()
	rows := make([]store.PropertyRow, n)
	for i := 0; i < n; i++ {
		rows[i] = props.Row(i)
	}
	binary.Write(&buf, order, uint32(n))
	binary.Write(&buf, order, rows)
	return buf.Bytes()
}

func decodeProperties(payload []byte) (*store.PropertyTable, error) {
	r := bytes.NewReader(payload)
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	rows := make([]store.PropertyRow, n)
	if err := binary.Read(r, order, rows); err != nil {
		return nil, err
	}
	b := store.NewPropertyBuilder()
	for _, row := range rows {
		b.Add(row)
	}
	return b.Build(), nil
}

func encodeQuantities(qty *store.QuantityTable) []byte {
	var buf bytes.Buffer
	n := qty.Len()
	rows := make([]store.QuantityRow, n)
	for i := 0; i < n; i++ {
		rows[i] = qty.Row(i)
	}
	binary.Write(&buf, order, uint32(n))
	binary.Write(&buf, order, rows)
	return buf.Bytes()
}

func decodeQuantities(payload []byte) (*store.QuantityTable, error) {
	r := bytes.NewReader(payload)
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	rows := make([]store.QuantityRow, n)
	if err := binary.Read(r, order, rows); err != nil {
		return nil, err
	}
	b := store.NewQuantityBuilder()
	for _, row := range rows {
		b.Add(row)
	}
	return b.Build(), nil
}

// encodeEdges serializes a flat edge list (the Builder's pre-CSR form, the
// only representation both directions can be rebuilt from).
func encodeEdges(edges []graph.Edge) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, order, uint32(len(edges)))
	binary.Write(&buf, order, edges)
	return buf.Bytes()
}

func decodeEdges(payload []byte) ([]graph.Edge, error) {
	r := bytes.NewReader(payload)
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, n)
	if err := binary.Read(r, order, edges); err != nil {
		return nil, err
	}
	return edges, nil
}
