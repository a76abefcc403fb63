package query

import (
	"math"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
)

var (
	idxRefLatitude, hasRefLatitude   = schema.Global().AttributeIndex("IFCSITE", "RefLatitude")
	idxRefLongitude, hasRefLongitude = schema.Global().AttributeIndex("IFCSITE", "RefLongitude")
	idxRefElevation, hasRefElevation = schema.Global().AttributeIndex("IFCSITE", "RefElevation")
)

// Location is the geographic anchor recoverable from the model's unique
// IfcSite, each field present independently since every IfcSite attribute
// feeding it is OPTIONAL.
type Location struct {
	Latitude     float64
	HasLatitude  bool
	Longitude    float64
	HasLongitude bool
	Elevation    float64
	HasElevation bool
}

// ProjectLocation decodes the first IfcSite's RefLatitude/RefLongitude
// (IfcCompoundPlaneAngleMeasure: degrees, minutes, seconds, optional
// millionths-of-a-second) and RefElevation, for export adapters that want
// a geographic anchor independent of C10's large-coordinate detection.
// Returns false if the source has no IfcSite or wasn't retained.
func (e *Engine) ProjectLocation() (Location, bool) {
	if e.source == nil {
		return Location{}, false
	}
	sites := e.source.ByType("IFCSITE")
	if len(sites) == 0 {
		return Location{}, false
	}
	site := sites[0]

	var loc Location
	if hasRefLatitude {
		if v, ok := compoundAngle(site, idxRefLatitude); ok {
			loc.Latitude, loc.HasLatitude = v, true
		}
	}
	if hasRefLongitude {
		if v, ok := compoundAngle(site, idxRefLongitude); ok {
			loc.Longitude, loc.HasLongitude = v, true
		}
	}
	if hasRefElevation {
		if v, ok := realAttr(site, idxRefElevation); ok {
			loc.Elevation, loc.HasElevation = v, true
		}
	}
	if !loc.HasLatitude && !loc.HasLongitude && !loc.HasElevation {
		return Location{}, false
	}
	return loc, true
}

// compoundAngle converts an IfcCompoundPlaneAngleMeasure list
// (degrees, minutes, seconds[, millionths-of-a-second]) into decimal
// degrees, preserving the sign of the degrees component.
func compoundAngle(e rawmodel.Entity, idx int) (float64, bool) {
	if idx < 0 || idx >= len(e.Values) {
		return 0, false
	}
	v := e.Values[idx]
	if v.Kind != decode.KindList || len(v.List) < 3 {
		return 0, false
	}
	deg, ok1 := intAt(v.List[0])
	min, ok2 := intAt(v.List[1])
	sec, ok3 := intAt(v.List[2])
	if !ok1 || !ok2 || !ok3 {
		return 0, false
	}
	frac := 0.0
	if len(v.List) > 3 {
		if micros, ok := intAt(v.List[3]); ok {
			frac = float64(micros) / 1_000_000.0
		}
	}

	sign := 1.0
	if deg < 0 {
		sign = -1.0
	}
	decimal := math.Abs(float64(deg)) + float64(min)/60.0 + (float64(sec)+frac)/3600.0
	return sign * decimal, true
}

func intAt(v decode.Value) (int64, bool) {
	switch v.Kind {
	case decode.KindInteger:
		return v.Int, true
	case decode.KindReal:
		return int64(v.Real), true
	default:
		return 0, false
	}
}

func realAttr(e rawmodel.Entity, idx int) (float64, bool) {
	if idx < 0 || idx >= len(e.Values) {
		return 0, false
	}
	v := e.Values[idx]
	switch v.Kind {
	case decode.KindReal:
		return v.Real, true
	case decode.KindInteger:
		return float64(v.Int), true
	default:
		return 0, false
	}
}
