package geometry

import (
	"strconv"

	"github.com/dgraph-io/ristretto"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxRepMapOrigin     = mustIndex("IFCREPRESENTATIONMAP", "MappingOrigin")
	idxRepMapRepresented = mustIndex("IFCREPRESENTATIONMAP", "MappedRepresentation")

	idxMappedSource = mustIndex("IFCMAPPEDITEM", "MappingSource")
	idxMappedTarget = mustIndex("IFCMAPPEDITEM", "MappingTarget")

	idxXform3DLocalOrigin = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR3D", "LocalOrigin")
	idxXform3DAxis1       = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR3D", "Axis1")
	idxXform3DAxis2       = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR3D", "Axis2")
	idxXform3DAxis3       = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR3D", "Axis3")
	idxXform3DScale       = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR3D", "Scale")
)

// mappedItemCache memoizes a mapping source's base mesh (the mesh built
// from its RepresentationMap's own local-space items, before the mapped
// item's target transform is applied) so repeated instances of the same
// type (furniture, fasteners, precast panels) only tessellate once.
type mappedItemCache struct {
	cache *ristretto.Cache
}

func newMappedItemCache() *mappedItemCache {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	if err != nil {
		return &mappedItemCache{}
	}
	return &mappedItemCache{cache: c}
}

func (c *mappedItemCache) get(sourceID uint32) (Mesh, bool) {
	if c.cache == nil {
		return Mesh{}, false
	}
	v, ok := c.cache.Get(strconv.FormatUint(uint64(sourceID), 10))
	if !ok {
		return Mesh{}, false
	}
	mesh, ok := v.(Mesh)
	return mesh, ok
}

func (c *mappedItemCache) set(sourceID uint32, mesh Mesh) {
	if c.cache == nil {
		return
	}
	cost := int64(len(mesh.Positions)*24 + len(mesh.Indices)*4)
	c.cache.Set(strconv.FormatUint(uint64(sourceID), 10), mesh, cost)
	c.cache.Wait()
}

// processMappedItem resolves a representation map's base geometry once per
// unique MappingSource (memoized) and instances it through MappingOrigin
// (the source's own placement) composed with MappingTarget (the instance
// transform), matching IFC's two-level mapped-item indirection.
func (p *Processor) processMappedItem(e rawmodel.Entity) (Mesh, error) {
	sourceRef, ok := refAttr(e, idxMappedSource)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "mapped item missing MappingSource")
	}
	base, err := p.resolveMappingSource(sourceRef)
	if err != nil {
		return Mesh{}, err
	}

	targetRef, ok := refAttr(e, idxMappedTarget)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "mapped item missing MappingTarget")
	}
	target, ok := p.resolveCartesianTransform3D(targetRef)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "mapped item has unresolvable MappingTarget")
	}
	return transformMesh(base, target), nil
}

func (p *Processor) resolveMappingSource(sourceRef uint32) (Mesh, error) {
	if mesh, ok := p.mapped.get(sourceRef); ok {
		return mesh, nil
	}
	source, ok := p.src.Entity(sourceRef)
	if !ok || source.TypeName != "IFCREPRESENTATIONMAP" {
		return Mesh{}, errorf(sourceRef, "mapping source #%d not found", sourceRef)
	}

	var origin geomath.Mat4 = geomath.Identity()
	if originRef, ok := refAttr(source, idxRepMapOrigin); ok {
		if m, err := p.places.ResolvePlacement(originRef); err == nil {
			origin = m
		}
	}

	repRef, ok := refAttr(source, idxRepMapRepresented)
	if !ok {
		return Mesh{}, errorf(sourceRef, "mapping source missing MappedRepresentation")
	}
	rep, ok := p.src.Entity(repRef)
	if !ok {
		return Mesh{}, errorf(sourceRef, "mapped representation #%d not found", repRef)
	}
	itemRefs, ok := listAttr(rep, idxRepresentationItems)
	if !ok {
		return Mesh{}, errorf(sourceRef, "mapped representation missing Items")
	}

	var mesh Mesh
	for _, v := range itemRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		itemMesh, err := p.resolveItem(v.Ref)
		if err != nil {
			continue
		}
		mesh.Merge(itemMesh)
	}
	mesh = transformMesh(mesh, origin)
	p.mapped.set(sourceRef, mesh)
	return mesh, nil
}

func (p *Processor) resolveCartesianTransform3D(id uint32) (geomath.Mat4, bool) {
	e, ok := p.src.Entity(id)
	if !ok {
		return geomath.Identity(), false
	}
	origin := geomath.Vec3{}
	if originRef, ok := refAttr(e, idxXform3DLocalOrigin); ok {
		if o, ok := cartesianPoint3D(p.src, originRef, p.scale); ok {
			origin = o
		}
	}
	x, y, z := geomath.Vec3{X: 1}, geomath.Vec3{Y: 1}, geomath.Vec3{Z: 1}
	if axisRef, ok := refAttr(e, idxXform3DAxis1); ok {
		if d, ok := direction3D(p.src, axisRef); ok {
			x = d
		}
	}
	if axisRef, ok := refAttr(e, idxXform3DAxis2); ok {
		if d, ok := direction3D(p.src, axisRef); ok {
			y = d
		}
	}
	if axisRef, ok := refAttr(e, idxXform3DAxis3); ok {
		if d, ok := direction3D(p.src, axisRef); ok {
			z = d
		}
	}
	scale := 1.0
	if s, ok := realAttr(e, idxXform3DScale); ok && s != 0 {
		scale = s
	}
	m := geomath.Basis(x.Scale(scale), y.Scale(scale), z.Scale(scale), origin)
	return m, true
}

func transformMesh(mesh Mesh, m geomath.Mat4) Mesh {
	var out Mesh
	out.Positions = make([]geomath.Vec3, len(mesh.Positions))
	out.Normals = make([]geomath.Vec3, len(mesh.Normals))
	for i, p := range mesh.Positions {
		out.Positions[i] = m.MulPoint(p)
	}
	for i, n := range mesh.Normals {
		out.Normals[i] = m.MulDirection(n).Normalize()
	}
	out.Indices = append([]uint32(nil), mesh.Indices...)
	return out
}
