package graph

import (
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
)

// relScan pairs a IfcRel* type name with the attribute names of its "one"
// and "many" endpoints and the RelType the edge should carry.
type relScan struct {
	typeName string
	relType  RelType
	oneAttr  string // singular endpoint, e.g. RelatingObject
	manyAttr string // list endpoint, e.g. RelatedObjects; "" if the type has none
}

var relScans = []relScan{
	{typeName: "IFCRELAGGREGATES", relType: Aggregates, oneAttr: "RelatingObject", manyAttr: "RelatedObjects"},
	{typeName: "IFCRELCONTAINEDINSPATIALSTRUCTURE", relType: ContainsElements, oneAttr: "RelatingStructure", manyAttr: "RelatedElements"},
	{typeName: "IFCRELREFERENCEDINSPATIALSTRUCTURE", relType: ReferencedInSpatialStructure, oneAttr: "RelatingStructure", manyAttr: "RelatedElements"},
	{typeName: "IFCRELDEFINESBYPROPERTIES", relType: DefinesByProperties, oneAttr: "RelatingPropertyDefinition", manyAttr: "RelatedObjects"},
	{typeName: "IFCRELDEFINESBYTYPE", relType: DefinesByType, oneAttr: "RelatingType", manyAttr: "RelatedObjects"},
	{typeName: "IFCRELASSOCIATESMATERIAL", relType: AssociatesMaterial, oneAttr: "RelatingMaterial", manyAttr: "RelatedObjects"},
	{typeName: "IFCRELASSOCIATESCLASSIFICATION", relType: AssociatesClassification, oneAttr: "RelatingClassification", manyAttr: "RelatedObjects"},
	{typeName: "IFCRELVOIDSELEMENT", relType: VoidsElement, oneAttr: "RelatingBuildingElement", manyAttr: ""},
	{typeName: "IFCRELFILLSELEMENT", relType: FillsElement, oneAttr: "RelatingOpeningElement", manyAttr: ""},
	{typeName: "IFCRELCONNECTSPATHELEMENTS", relType: ConnectsPathElements, oneAttr: "RelatingElement", manyAttr: ""},
	{typeName: "IFCRELCONNECTSELEMENTS", relType: ConnectsElements, oneAttr: "RelatingElement", manyAttr: ""},
	{typeName: "IFCRELSPACEBOUNDARY", relType: SpaceBoundary, oneAttr: "RelatingSpace", manyAttr: ""},
	{typeName: "IFCRELASSIGNSTOGROUP", relType: AssignsToGroup, oneAttr: "RelatingGroup", manyAttr: "RelatedObjects"},
	{typeName: "IFCRELASSIGNSTOPRODUCT", relType: AssignsToProduct, oneAttr: "RelatingProduct", manyAttr: "RelatedObjects"},
}

// secondAttr names the single-valued target of relationship types that
// carry exactly one related endpoint rather than a list (spec §3's
// "second pass ... resolves the single opposite endpoint").
var secondAttr = map[string]string{
	"IFCRELVOIDSELEMENT":        "RelatedOpeningElement",
	"IFCRELFILLSELEMENT":        "RelatedBuildingElement",
	"IFCRELCONNECTSPATHELEMENTS": "RelatedElement",
	"IFCRELCONNECTSELEMENTS":    "RelatedElement",
	"IFCRELSPACEBOUNDARY":       "RelatedBuildingElement",
}

// ScanRelationships performs C6's two-pass build: it walks every decoded
// IfcRel* instance in src, resolves its endpoint attributes against the
// schema registry, and returns a Builder loaded with one Edge per
// (relating, related) pair. The caller calls Build() to compact it into a
// queryable Graph.
func ScanRelationships(src *rawmodel.Store) *Builder {
	b := NewBuilder()
	for _, scan := range relScans {
		for _, e := range src.ByType(scan.typeName) {
			scanOne(b, e, scan)
		}
	}
	return b
}

func scanOne(b *Builder, e rawmodel.Entity, scan relScan) {
	oneIdx, ok := schema.Global().AttributeIndex(e.TypeName, scan.oneAttr)
	if !ok {
		return
	}
	relating, ok := refAttrAt(e, oneIdx)
	if !ok {
		return
	}

	if many, ok := scan.relatedMany(e); ok {
		for _, dst := range many {
			b.Add(Edge{Source: relating, Target: dst, Type: scan.relType, RelID: e.ExpressID})
		}
		return
	}

	if attrName, ok := secondAttr[e.TypeName]; ok {
		if idx, ok := schema.Global().AttributeIndex(e.TypeName, attrName); ok {
			if dst, ok := refAttrAt(e, idx); ok {
				b.Add(Edge{Source: relating, Target: dst, Type: scan.relType, RelID: e.ExpressID})
			}
		}
	}
}

// relatedMany resolves scan.manyAttr (a list of entity references) against
// e, returning false when the scan kind carries no list endpoint.
func (scan relScan) relatedMany(e rawmodel.Entity) ([]uint32, bool) {
	if scan.manyAttr == "" {
		return nil, false
	}
	idx, ok := schema.Global().AttributeIndex(e.TypeName, scan.manyAttr)
	if !ok {
		return nil, false
	}
	if idx >= len(e.Values) || e.Values[idx].Kind != decode.KindList {
		return nil, false
	}
	var out []uint32
	for _, v := range e.Values[idx].List {
		if v.Kind == decode.KindRef {
			out = append(out, v.Ref)
		}
	}
	return out, true
}

func refAttrAt(e rawmodel.Entity, idx int) (uint32, bool) {
	if idx < 0 || idx >= len(e.Values) || e.Values[idx].Kind != decode.KindRef {
		return 0, false
	}
	return e.Values[idx].Ref, true
}
