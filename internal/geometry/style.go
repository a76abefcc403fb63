package geometry

import (
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxStyledItemItem   = mustIndex("IFCSTYLEDITEM", "Item")
	idxStyledItemStyles = mustIndex("IFCSTYLEDITEM", "Styles")

	idxSurfaceStyleStyles = mustIndex("IFCSURFACESTYLE", "Styles")

	idxShadingColour      = mustIndex("IFCSURFACESTYLESHADING", "SurfaceColour")
	idxRenderTransparency = mustIndex("IFCSURFACESTYLERENDERING", "Transparency")

	idxColourRed   = mustIndex("IFCCOLOURRGB", "Red")
	idxColourGreen = mustIndex("IFCCOLOURRGB", "Green")
	idxColourBlue  = mustIndex("IFCCOLOURRGB", "Blue")
)

// resolveItemColor walks the IfcStyledItem chain for one representation
// item: IfcStyledItem -> Styles (IfcSurfaceStyle) -> Styles
// (IfcSurfaceStyleShading/Rendering) -> SurfaceColour, falling back to
// DefaultColor when no styled item targets this item.
func (p *Processor) resolveItemColor(itemID uint32) RGBA {
	for _, e := range p.src.ByType("IFCSTYLEDITEM") {
		targetRef, ok := refAttr(e, idxStyledItemItem)
		if !ok || targetRef != itemID {
			continue
		}
		if c, ok := p.resolveStyledItemColor(e); ok {
			return c
		}
	}
	return DefaultColor
}

func (p *Processor) resolveStyledItemColor(e rawmodel.Entity) (RGBA, bool) {
	styleRefs, ok := listAttr(e, idxStyledItemStyles)
	if !ok {
		return RGBA{}, false
	}
	for _, v := range styleRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		style, ok := p.src.Entity(v.Ref)
		if !ok || style.TypeName != "IFCSURFACESTYLE" {
			continue
		}
		if c, ok := p.resolveSurfaceStyleColor(style); ok {
			return c, true
		}
	}
	return RGBA{}, false
}

func (p *Processor) resolveSurfaceStyleColor(style rawmodel.Entity) (RGBA, bool) {
	elementRefs, ok := listAttr(style, idxSurfaceStyleStyles)
	if !ok {
		return RGBA{}, false
	}
	for _, v := range elementRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		shading, ok := p.src.Entity(v.Ref)
		if !ok || (shading.TypeName != "IFCSURFACESTYLESHADING" && shading.TypeName != "IFCSURFACESTYLERENDERING") {
			continue
		}
		colourRef, ok := refAttr(shading, idxShadingColour)
		if !ok {
			continue
		}
		rgb, ok := p.resolveColourRgb(colourRef)
		if !ok {
			continue
		}
		if shading.TypeName == "IFCSURFACESTYLERENDERING" {
			if t, ok := realAttr(shading, idxRenderTransparency); ok {
				rgb.A = 1 - t
			}
		}
		return rgb, true
	}
	return RGBA{}, false
}

func (p *Processor) resolveColourRgb(id uint32) (RGBA, bool) {
	e, ok := p.src.Entity(id)
	if !ok || e.TypeName != "IFCCOLOURRGB" {
		return RGBA{}, false
	}
	r, okr := realAttr(e, idxColourRed)
	g, okg := realAttr(e, idxColourGreen)
	b, okb := realAttr(e, idxColourBlue)
	if !okr || !okg || !okb {
		return RGBA{}, false
	}
	return RGBA{R: r, G: g, B: b, A: 1.0}, true
}
