package ifcmodel

import (
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
	"github.com/arx-os/ifclite/internal/store"
)

func mustIdx(typeName, attrName string) int {
	idx, ok := schema.Global().AttributeIndex(typeName, attrName)
	if !ok {
		panic("ifcmodel: schema missing " + typeName + "." + attrName)
	}
	return idx
}

var (
	idxPsetHasProperties = mustIdx("IFCPROPERTYSET", "HasProperties")
	idxPropName          = mustIdx("IFCPROPERTYSINGLEVALUE", "Name")
	idxPropNominalValue  = mustIdx("IFCPROPERTYSINGLEVALUE", "NominalValue")
	idxEQQuantities      = mustIdx("IFCELEMENTQUANTITY", "Quantities")
)

var quantityAttrByType = map[string]struct {
	Type      store.QuantityType
	ValueAttr string
}{
	"IFCQUANTITYLENGTH": {store.QuantityLength, "LengthValue"},
	"IFCQUANTITYAREA":   {store.QuantityArea, "AreaValue"},
	"IFCQUANTITYVOLUME": {store.QuantityVolume, "VolumeValue"},
	"IFCQUANTITYCOUNT":  {store.QuantityCount, "CountValue"},
	"IFCQUANTITYWEIGHT": {store.QuantityWeight, "WeightValue"},
	"IFCQUANTITYTIME":   {store.QuantityTime, "TimeValue"},
}

// isRootDescendant reports whether typeName's schema chain includes
// IfcRoot — i.e. whether it carries GlobalId/Name/Description and so
// qualifies for a row in the entity table. Bare geometry and value-holder
// entities (IfcCartesianPoint, IfcPropertySingleValue, ...) are not
// IfcRoot descendants and stay reachable only through rawmodel.Store.
func isRootDescendant(typeName string) bool {
	_, ok := schema.Global().AttributeIndex(typeName, "GlobalId")
	return ok
}

func rootAttr(typeName, attrName string) (int, bool) {
	return schema.Global().AttributeIndex(typeName, attrName)
}

func strVal(e rawmodel.Entity, idx int, ok bool) uint32 {
	if !ok || idx < 0 || idx >= len(e.Values) {
		return intern.Empty
	}
	v := e.Values[idx]
	if v.Kind == decode.KindString || v.Kind == decode.KindEnum {
		return v.Str
	}
	return intern.Empty
}

func refVal(e rawmodel.Entity, idx int) (uint32, bool) {
	if idx < 0 || idx >= len(e.Values) || e.Values[idx].Kind != decode.KindRef {
		return 0, false
	}
	return e.Values[idx].Ref, true
}

func listVal(e rawmodel.Entity, idx int) ([]decode.Value, bool) {
	if idx < 0 || idx >= len(e.Values) || e.Values[idx].Kind != decode.KindList {
		return nil, false
	}
	return e.Values[idx].List, true
}

func realVal(e rawmodel.Entity, idx int) (float64, bool) {
	if idx < 0 || idx >= len(e.Values) {
		return 0, false
	}
	switch v := e.Values[idx]; v.Kind {
	case decode.KindReal:
		return v.Real, true
	case decode.KindInteger:
		return float64(v.Int), true
	default:
		return 0, false
	}
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// buildTables assembles the columnar entity/property/quantity tables (C5)
// from the raw decoded model, the relationship graph (C6), and the spatial
// hierarchy (C8). roots is every decoded entity whose type descends from
// IfcRoot, collected during the tokenize/decode pass.
func buildTables(src *rawmodel.Store, table *intern.Table, g *graph.Graph, h *hierarchy.Hierarchy, roots []rawmodel.Entity) (*store.EntityTable, *store.PropertyTable, *store.QuantityTable) {
	types := store.NewTypeTable()
	eb := store.NewEntityBuilder(types)
	for _, e := range roots {
		eb.Add(buildEntityRow(e, types, src, table, g, h))
	}
	entities := eb.Build()

	pb := store.NewPropertyBuilder()
	qb := store.NewQuantityBuilder()
	for _, e := range g.AllEdges() {
		if e.Type != graph.DefinesByProperties {
			continue
		}
		psetEntity, ok := src.Entity(e.Source)
		if !ok {
			continue
		}
		switch psetEntity.TypeName {
		case "IFCPROPERTYSET":
			addPropertySet(pb, src, table, psetEntity, e.Target)
		case "IFCELEMENTQUANTITY":
			addQuantitySet(qb, src, psetEntity, e.Target)
		}
	}

	return entities, pb.Build(), qb.Build()
}

func buildEntityRow(e rawmodel.Entity, types *store.TypeTable, src *rawmodel.Store, table *intern.Table, g *graph.Graph, h *hierarchy.Hierarchy) store.EntityRow {
	globalIdx, hasGlobalID := rootAttr(e.TypeName, "GlobalId")
	nameIdx, hasName := rootAttr(e.TypeName, "Name")
	descIdx, hasDesc := rootAttr(e.TypeName, "Description")

	row := store.EntityRow{
		ExpressID:         e.ExpressID,
		TypeEnum:          types.EnumFor(e.TypeName),
		GlobalID:          strVal(e, globalIdx, hasGlobalID),
		Name:              strVal(e, nameIdx, hasName),
		Description:       strVal(e, descIdx, hasDesc),
		ContainedInStorey: -1,
		DefinedByType:     -1,
		GeometryIndex:     -1,
	}

	if objTypeIdx, ok := rootAttr(e.TypeName, "ObjectType"); ok {
		row.ObjectType = strVal(e, objTypeIdx, true)
	}

	if repIdx, ok := rootAttr(e.TypeName, "Representation"); ok {
		if _, hasRep := refVal(e, repIdx); hasRep {
			row.Flags |= store.HasGeometry
		}
	}

	if storeyID, ok := h.ElementStorey(e.ExpressID); ok {
		row.ContainedInStorey = int32(storeyID)
	}

	if defType := g.GetRelated(e.ExpressID, graph.DefinesByType, graph.Inverse); len(defType) > 0 {
		row.DefinedByType = int32(defType[0])
	}
	if len(g.GetRelated(e.ExpressID, graph.DefinesByType, graph.Forward)) > 0 {
		row.Flags |= store.IsType
	}
	if len(g.GetRelated(e.ExpressID, graph.VoidsElement, graph.Forward)) > 0 {
		row.Flags |= store.HasOpenings
	}
	if len(g.GetRelated(e.ExpressID, graph.FillsElement, graph.Inverse)) > 0 {
		row.Flags |= store.IsFilling
	}

	for _, psetID := range g.GetRelated(e.ExpressID, graph.DefinesByProperties, graph.Inverse) {
		psetEntity, ok := src.Entity(psetID)
		if !ok {
			continue
		}
		switch psetEntity.TypeName {
		case "IFCPROPERTYSET":
			row.Flags |= store.HasProperties
			if psetHasIsExternalTrue(src, table, psetEntity) {
				row.Flags |= store.IsExternal
			}
		case "IFCELEMENTQUANTITY":
			row.Flags |= store.HasQuantities
		}
	}

	return row
}

// psetHasIsExternalTrue scans pset's properties for the IFC convention
// single-value boolean Pset_*Common.IsExternal == TRUE.
func psetHasIsExternalTrue(src *rawmodel.Store, table *intern.Table, pset rawmodel.Entity) bool {
	items, ok := listVal(pset, idxPsetHasProperties)
	if !ok {
		return false
	}
	for _, v := range items {
		if v.Kind != decode.KindRef {
			continue
		}
		prop, ok := src.Entity(v.Ref)
		if !ok || prop.TypeName != "IFCPROPERTYSINGLEVALUE" {
			continue
		}
		if table.Get(strVal(prop, idxPropName, true)) != "IsExternal" {
			continue
		}
		if idxPropNominalValue >= len(prop.Values) {
			continue
		}
		switch v := prop.Values[idxPropNominalValue]; v.Kind {
		case decode.KindBool:
			return v.Bool
		case decode.KindLogical:
			return !v.Unknown && v.Bool
		}
	}
	return false
}

func addPropertySet(pb *store.PropertyBuilder, src *rawmodel.Store, table *intern.Table, pset rawmodel.Entity, objID uint32) {
	nameIdx, hasName := rootAttr(pset.TypeName, "Name")
	globalIdx, hasGlobalID := rootAttr(pset.TypeName, "GlobalId")
	psetName := strVal(pset, nameIdx, hasName)
	psetGlobalID := strVal(pset, globalIdx, hasGlobalID)

	items, ok := listVal(pset, idxPsetHasProperties)
	if !ok {
		return
	}
	for _, v := range items {
		if v.Kind != decode.KindRef {
			continue
		}
		prop, ok := src.Entity(v.Ref)
		if !ok || prop.TypeName != "IFCPROPERTYSINGLEVALUE" {
			continue
		}
		row := store.PropertyRow{
			EntityID:     objID,
			PsetName:     psetName,
			PsetGlobalID: psetGlobalID,
			PropName:     strVal(prop, idxPropName, true),
			UnitID:       -1,
		}
		if idxPropNominalValue < len(prop.Values) {
			setPropertyValue(&row, prop.Values[idxPropNominalValue])
		}
		pb.Add(row)
	}
}

func setPropertyValue(row *store.PropertyRow, v decode.Value) {
	switch v.Kind {
	case decode.KindReal:
		row.Discriminator = store.PropReal
		row.ValueReal = v.Real
	case decode.KindInteger:
		row.Discriminator = store.PropInt
		row.ValueInt = int32(v.Int)
	case decode.KindBool:
		row.Discriminator = store.PropBool
		row.ValueBool = boolToUint8(v.Bool)
	case decode.KindLogical:
		row.Discriminator = store.PropBool
		if v.Unknown {
			row.ValueBool = 255
		} else {
			row.ValueBool = boolToUint8(v.Bool)
		}
	case decode.KindString, decode.KindEnum:
		row.Discriminator = store.PropString
		row.ValueString = int32(v.Str)
	}
}

func addQuantitySet(qb *store.QuantityBuilder, src *rawmodel.Store, eq rawmodel.Entity, objID uint32) {
	items, ok := listVal(eq, idxEQQuantities)
	if !ok {
		return
	}
	for _, v := range items {
		if v.Kind != decode.KindRef {
			continue
		}
		qe, ok := src.Entity(v.Ref)
		if !ok {
			continue
		}
		kind, ok := quantityAttrByType[qe.TypeName]
		if !ok {
			continue
		}
		valIdx, ok := schema.Global().AttributeIndex(qe.TypeName, kind.ValueAttr)
		if !ok {
			continue
		}
		val, ok := realVal(qe, valIdx)
		if !ok {
			continue
		}
		qb.Add(store.QuantityRow{EntityID: objID, Type: kind.Type, Value: val, Formula: -1})
	}
}
