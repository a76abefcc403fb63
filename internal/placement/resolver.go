// Package placement resolves the IfcLocalPlacement chain of a product into
// a world-space 4x4 matrix (C7): recursive parent composition plus
// Gram-Schmidt orthonormal basis construction from IfcAxis2Placement3D/2D.
package placement

import (
	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
)

// Resolver walks IfcLocalPlacement/IfcAxis2Placement* chains, memoizing
// the result per expressId since sibling products routinely share a parent
// placement.
type Resolver struct {
	src       *rawmodel.Store
	table     *intern.Table
	unitScale float64
	cache     map[uint32]geomath.Mat4
	resolving map[uint32]bool
}

func NewResolver(src *rawmodel.Store, table *intern.Table) *Resolver {
	unitScale, ok := ResolveLengthUnitScale(src, table)
	if !ok {
		unitScale = 1.0
	}
	return &Resolver{
		src:       src,
		table:     table,
		unitScale: unitScale,
		cache:     make(map[uint32]geomath.Mat4),
		resolving: make(map[uint32]bool),
	}
}

// UnitScale returns the resolved length-unit scale factor applied to every
// placement's translation.
func (r *Resolver) UnitScale() float64 { return r.unitScale }

// ResolvePlacement returns the world-space matrix for an
// IfcLocalPlacement (or a bare IfcAxis2Placement3D/2D) by expressId. For
// any other entity with an ObjectPlacement reference (a product), it
// resolves the placement that attribute points to.
func (r *Resolver) ResolvePlacement(expressID uint32) (geomath.Mat4, error) {
	if m, ok := r.cache[expressID]; ok {
		return m, nil
	}
	if r.resolving[expressID] {
		return geomath.Identity(), apperrors.InvalidStepf(int64(expressID), "circular placement reference")
	}
	r.resolving[expressID] = true
	defer delete(r.resolving, expressID)

	e, ok := r.src.Entity(expressID)
	if !ok {
		return geomath.Identity(), apperrors.UnresolvedReff(int64(expressID), "placement entity not found")
	}

	var m geomath.Mat4
	var err error
	switch e.TypeName {
	case "IFCLOCALPLACEMENT":
		m, err = r.resolveLocalPlacement(e)
	case "IFCAXIS2PLACEMENT3D":
		m, err = r.resolveAxis2Placement3D(e)
	case "IFCAXIS2PLACEMENT2D":
		m, err = r.resolveAxis2Placement2D(e)
	default:
		idx, ok := schema.Global().AttributeIndex(e.TypeName, "ObjectPlacement")
		if !ok || idx >= len(e.Values) || e.Values[idx].Kind != decode.KindRef {
			return geomath.Identity(), apperrors.UnknownTypef(int64(expressID), "cannot resolve placement for %s", e.TypeName)
		}
		m, err = r.ResolvePlacement(e.Values[idx].Ref)
	}
	if err != nil {
		return geomath.Identity(), err
	}
	r.cache[expressID] = m
	return m, nil
}

// resolveLocalPlacement composes parent(PlacementRelTo) * local(RelativePlacement).
// IfcLocalPlacement attributes: [PlacementRelTo, RelativePlacement].
func (r *Resolver) resolveLocalPlacement(e rawmodel.Entity) (geomath.Mat4, error) {
	if len(e.Values) < 2 {
		return geomath.Identity(), apperrors.SchemaArityf(int64(e.ExpressID), "IfcLocalPlacement missing attributes")
	}
	parent := geomath.Identity()
	if rel := e.Values[0]; rel.Kind == decode.KindRef {
		p, err := r.ResolvePlacement(rel.Ref)
		if err != nil {
			return geomath.Identity(), err
		}
		parent = p
	}

	localRef := e.Values[1]
	if localRef.Kind != decode.KindRef {
		return geomath.Identity(), apperrors.SchemaArityf(int64(e.ExpressID), "IfcLocalPlacement.RelativePlacement is not a reference")
	}
	local, err := r.ResolvePlacement(localRef.Ref)
	if err != nil {
		return geomath.Identity(), err
	}
	return parent.Mul(local), nil
}

// resolveAxis2Placement3D builds an orthonormal basis by Gram-Schmidt:
// Z is normalized first, Y = normalize(Z x RefDir), X = normalize(Y x Z).
// IfcAxis2Placement3D attributes: [Location, Axis, RefDirection].
func (r *Resolver) resolveAxis2Placement3D(e rawmodel.Entity) (geomath.Mat4, error) {
	origin, err := r.resolvePointAttr(e, 0)
	if err != nil {
		return geomath.Identity(), err
	}
	z := geomath.UnitZ
	if len(e.Values) > 1 {
		if dir, ok, derr := r.resolveDirectionAttr(e, 1); derr != nil {
			return geomath.Identity(), derr
		} else if ok {
			z = dir
		}
	}
	ref := geomath.UnitX
	if len(e.Values) > 2 {
		if dir, ok, derr := r.resolveDirectionAttr(e, 2); derr != nil {
			return geomath.Identity(), derr
		} else if ok {
			ref = dir
		}
	}

	zn := z.Normalize()
	y := zn.Cross(ref).Normalize()
	x := y.Cross(zn).Normalize()

	return geomath.Basis(x, y, zn, origin.Scale(r.unitScale)), nil
}

// resolveAxis2Placement2D fixes Z to +Z and derives Y = Z x RefDirection.
// IfcAxis2Placement2D attributes: [Location, RefDirection].
func (r *Resolver) resolveAxis2Placement2D(e rawmodel.Entity) (geomath.Mat4, error) {
	origin, err := r.resolvePointAttr(e, 0)
	if err != nil {
		return geomath.Identity(), err
	}
	ref := geomath.UnitX
	if len(e.Values) > 1 {
		if dir, ok, derr := r.resolveDirectionAttr(e, 1); derr != nil {
			return geomath.Identity(), derr
		} else if ok {
			ref = dir
		}
	}
	z := geomath.UnitZ
	x := ref.Normalize()
	y := z.Cross(x).Normalize()

	return geomath.Basis(x, y, z, origin.Scale(r.unitScale)), nil
}

func (r *Resolver) resolvePointAttr(e rawmodel.Entity, idx int) (geomath.Vec3, error) {
	if len(e.Values) <= idx || e.Values[idx].IsNull() {
		return geomath.Zero3, nil
	}
	ref := e.Values[idx]
	if ref.Kind != decode.KindRef {
		return geomath.Zero3, apperrors.SchemaArityf(int64(e.ExpressID), "expected point reference")
	}
	pt, ok := r.src.Entity(ref.Ref)
	if !ok {
		return geomath.Zero3, apperrors.UnresolvedReff(int64(ref.Ref), "point entity not found")
	}
	return coordsOf(pt), nil
}

func (r *Resolver) resolveDirectionAttr(e rawmodel.Entity, idx int) (geomath.Vec3, bool, error) {
	if len(e.Values) <= idx || e.Values[idx].IsNull() {
		return geomath.Zero3, false, nil
	}
	ref := e.Values[idx]
	if ref.Kind != decode.KindRef {
		return geomath.Zero3, false, nil
	}
	dir, ok := r.src.Entity(ref.Ref)
	if !ok {
		return geomath.Zero3, false, apperrors.UnresolvedReff(int64(ref.Ref), "direction entity not found")
	}
	return coordsOf(dir), true, nil
}

// coordsOf reads an IfcCartesianPoint/IfcDirection's single list-of-reals
// attribute (DirectionRatios or Coordinates), zero-filling missing axes.
func coordsOf(e rawmodel.Entity) geomath.Vec3 {
	if len(e.Values) == 0 || e.Values[0].Kind != decode.KindList {
		return geomath.Zero3
	}
	coords := e.Values[0].List
	var v geomath.Vec3
	if len(coords) > 0 {
		v.X = realOf(coords[0])
	}
	if len(coords) > 1 {
		v.Y = realOf(coords[1])
	}
	if len(coords) > 2 {
		v.Z = realOf(coords[2])
	}
	return v
}

func realOf(v decode.Value) float64 {
	switch v.Kind {
	case decode.KindReal:
		return v.Real
	case decode.KindInteger:
		return float64(v.Int)
	default:
		return 0
	}
}
