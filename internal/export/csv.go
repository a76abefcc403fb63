// Package export implements the pure read-side export adapters (C15):
// CSV, Parquet, and glTF writers over a finished entity/property/quantity
// store and mesh set. None of these mutate the store they read from.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/store"
)

// CSVWriter writes the columnar tables as plain CSV, one file per table,
// resolving interned columns back to their string form via the shared
// table (matches teacher convention: no pack repo reaches for a CSV
// library, every writer here uses stdlib encoding/csv).
type CSVWriter struct{}

func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

func (w *CSVWriter) WriteEntities(out io.Writer, entities *store.EntityTable, strings *intern.Table) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{"express_id", "type_name", "global_id", "name", "description", "object_type", "contained_in_storey", "flags"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range entities.All() {
		record := []string{
			strconv.FormatUint(uint64(row.ExpressID), 10),
			entities.TypeName(row.TypeEnum),
			strings.Get(row.GlobalID),
			strings.Get(row.Name),
			strings.Get(row.Description),
			strings.Get(row.ObjectType),
			strconv.FormatInt(int64(row.ContainedInStorey), 10),
			strconv.FormatUint(uint64(row.Flags), 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *CSVWriter) WriteProperties(out io.Writer, properties *store.PropertyTable, strings *intern.Table) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{"entity_id", "pset_name", "prop_name", "value_string", "value_real", "value_int", "value_bool"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < properties.Len(); i++ {
		row := properties.Row(i)
		valueString := ""
		if row.Discriminator == store.PropString && row.ValueString >= 0 {
			valueString = strings.Get(uint32(row.ValueString))
		}
		valueBool := ""
		if row.Discriminator == store.PropBool && row.ValueBool != 255 {
			valueBool = strconv.FormatBool(row.ValueBool == 1)
		}
		record := []string{
			strconv.FormatUint(uint64(row.EntityID), 10),
			strings.Get(row.PsetName),
			strings.Get(row.PropName),
			valueString,
			formatRealOrEmpty(row.Discriminator == store.PropReal, row.ValueReal),
			formatIntOrEmpty(row.Discriminator == store.PropInt, row.ValueInt),
			valueBool,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *CSVWriter) WriteQuantities(out io.Writer, quantities *store.QuantityTable, strings *intern.Table) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{"entity_id", "type", "value", "formula"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < quantities.Len(); i++ {
		row := quantities.Row(i)
		formula := ""
		if row.Formula >= 0 {
			formula = strings.Get(uint32(row.Formula))
		}
		record := []string{
			strconv.FormatUint(uint64(row.EntityID), 10),
			quantityTypeName(row.Type),
			strconv.FormatFloat(row.Value, 'g', -1, 64),
			formula,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatRealOrEmpty(present bool, v float64) string {
	if !present {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatIntOrEmpty(present bool, v int32) string {
	if !present {
		return ""
	}
	return strconv.FormatInt(int64(v), 10)
}

func quantityTypeName(t store.QuantityType) string {
	switch t {
	case store.QuantityLength:
		return "Length"
	case store.QuantityArea:
		return "Area"
	case store.QuantityVolume:
		return "Volume"
	case store.QuantityCount:
		return "Count"
	case store.QuantityWeight:
		return "Weight"
	case store.QuantityTime:
		return "Time"
	default:
		return "Unknown"
	}
}
