package geometry

import (
	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
)

// errorf builds the per-item failure reason recorded against an
// ElementResult when a representation item cannot be meshed.
func errorf(expressID uint32, format string, args ...interface{}) error {
	return apperrors.GeometryItemf(int64(expressID), format, args...)
}

// mustIndex resolves attrName's flattened position in typeName's schema
// definition. Panics on an unknown type/attribute pair: that is a schema
// registry gap, not a malformed input file.
func mustIndex(typeName, attrName string) int {
	idx, ok := schema.Global().AttributeIndex(typeName, attrName)
	if !ok {
		panic("geometry: schema missing " + typeName + "." + attrName)
	}
	return idx
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

func refAttr(e rawmodel.Entity, idx int) (uint32, bool) {
	if idx < 0 || idx >= len(e.Values) || e.Values[idx].Kind != decode.KindRef {
		return 0, false
	}
	return e.Values[idx].Ref, true
}

func boolAttr(e rawmodel.Entity, idx int) (bool, bool) {
	if idx < 0 || idx >= len(e.Values) {
		return false, false
	}
	v := e.Values[idx]
	switch v.Kind {
	case decode.KindBool:
		return v.Bool, true
	case decode.KindLogical:
		return v.Bool, !v.Unknown
	default:
		return false, false
	}
}

func strAttr(e rawmodel.Entity, idx int, table *intern.Table) (string, bool) {
	if idx < 0 || idx >= len(e.Values) {
		return "", false
	}
	v := e.Values[idx]
	if v.Kind != decode.KindString && v.Kind != decode.KindEnum {
		return "", false
	}
	return table.Get(v.Str), true
}

func listAttr(e rawmodel.Entity, idx int) ([]decode.Value, bool) {
	if idx < 0 || idx >= len(e.Values) || e.Values[idx].Kind != decode.KindList {
		return nil, false
	}
	return e.Values[idx].List, true
}
