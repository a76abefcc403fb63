package placement

import (
	"strings"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
)

var unitsInContextIndex, hasUnitsInContextIndex = schema.Global().AttributeIndex("IFCPROJECT", "UnitsInContext")

// siPrefixScale maps an IfcSIPrefix enum label to its multiplier, per
// spec §4.6 ("MILLI -> 1e-3, CENTI -> 1e-2, unset -> 1.0").
var siPrefixScale = map[string]float64{
	"EXA": 1e18, "PETA": 1e15, "TERA": 1e12, "GIGA": 1e9, "MEGA": 1e6,
	"KILO": 1e3, "HECTO": 1e2, "DECA": 1e1,
	"DECI": 1e-1, "CENTI": 1e-2, "MILLI": 1e-3, "MICRO": 1e-6,
	"NANO": 1e-9, "PICO": 1e-12, "FEMTO": 1e-15, "ATTO": 1e-18,
}

// ResolveLengthUnitScale walks IfcProject.UnitsInContext to the length
// unit's SI scale factor, combining an IfcConversionBasedUnit's factor
// when one wraps the SI unit. Returns 1.0 and ok=false when the project or
// unit assignment is missing (spec: "UnitLookupFailed ... Unit scale
// defaults to 1.0; warning").
func ResolveLengthUnitScale(src *rawmodel.Store, table *intern.Table) (float64, bool) {
	projects := src.ByType("IFCPROJECT")
	if len(projects) == 0 {
		return 1.0, false
	}
	project := projects[0]
	if !hasUnitsInContextIndex || len(project.Values) <= unitsInContextIndex || project.Values[unitsInContextIndex].IsNull() {
		return 1.0, false
	}
	unitsRef := project.Values[unitsInContextIndex].Ref
	assignment, ok := src.Entity(unitsRef)
	if !ok || len(assignment.Values) < 1 {
		return 1.0, false
	}
	units := assignment.Values[0]
	if units.Kind != decode.KindList {
		return 1.0, false
	}
	for _, u := range units.List {
		if u.Kind != decode.KindRef {
			continue
		}
		if scale, ok := lengthScaleOf(src, table, u.Ref); ok {
			return scale, true
		}
	}
	return 1.0, false
}

func lengthScaleOf(src *rawmodel.Store, table *intern.Table, id uint32) (float64, bool) {
	e, ok := src.Entity(id)
	if !ok {
		return 0, false
	}
	switch e.TypeName {
	case "IFCSIUNIT":
		if !isLengthUnit(e, table) {
			return 0, false
		}
		return siScaleOf(e, table), true
	case "IFCCONVERSIONBASEDUNIT":
		if len(e.Values) < 4 || !isLengthUnit(e, table) {
			return 0, false
		}
		factorRef := e.Values[3]
		if factorRef.Kind != decode.KindRef {
			return 0, false
		}
		measure, ok := src.Entity(factorRef.Ref)
		if !ok || len(measure.Values) < 2 {
			return 0, false
		}
		value := measure.Values[0]
		var numeric float64
		switch value.Kind {
		case decode.KindReal:
			numeric = value.Real
		case decode.KindInteger:
			numeric = float64(value.Int)
		default:
			return 0, false
		}
		base := 1.0
		if unitRef := measure.Values[1]; unitRef.Kind == decode.KindRef {
			if s, ok := lengthScaleOf(src, table, unitRef.Ref); ok {
				base = s
			}
		}
		return numeric * base, true
	default:
		return 0, false
	}
}

func isLengthUnit(e rawmodel.Entity, table *intern.Table) bool {
	idx := 0
	if e.TypeName == "IFCCONVERSIONBASEDUNIT" {
		idx = 1
	}
	if idx >= len(e.Values) {
		return false
	}
	v := e.Values[idx]
	if v.Kind != decode.KindEnum {
		return false
	}
	return strings.EqualFold(table.Get(v.Str), "LENGTHUNIT")
}

func siScaleOf(e rawmodel.Entity, table *intern.Table) float64 {
	if len(e.Values) < 2 {
		return 1.0
	}
	prefix := e.Values[1]
	if prefix.Kind != decode.KindEnum {
		return 1.0
	}
	if scale, ok := siPrefixScale[strings.ToUpper(table.Get(prefix.Str))]; ok {
		return scale
	}
	return 1.0
}
