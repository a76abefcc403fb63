package export

import (
	"io"

	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/parquet-go/parquet-go"
)

// EntityRecord is the Parquet row shape for the entity table, field names
// matching the molecule-record tag style (snake_case column names, optional
// fields marked explicitly) used throughout the rest of the pack.
type EntityRecord struct {
	ExpressID         uint32 `parquet:"express_id"`
	TypeName          string `parquet:"type_name"`
	GlobalID          string `parquet:"global_id,optional"`
	Name              string `parquet:"name,optional"`
	Description       string `parquet:"description,optional"`
	ObjectType        string `parquet:"object_type,optional"`
	Flags             uint8  `parquet:"flags"`
	ContainedInStorey int32  `parquet:"contained_in_storey"`
	DefinedByType     int32  `parquet:"defined_by_type"`
}

// PropertyRecord is the Parquet row shape for the property table. Exactly
// one of ValueString/ValueReal/ValueInt/ValueBool is meaningful per row,
// selected by Discriminator, matching the in-memory PropertyRow.
type PropertyRecord struct {
	EntityID      uint32 `parquet:"entity_id"`
	PsetName      string `parquet:"pset_name,optional"`
	PropName      string `parquet:"prop_name,optional"`
	Discriminator uint8  `parquet:"discriminator"`
	ValueString   string `parquet:"value_string,optional"`
	ValueReal     float64 `parquet:"value_real,optional"`
	ValueInt      int32   `parquet:"value_int,optional"`
	ValueBool     *bool   `parquet:"value_bool,optional"`
}

// QuantityRecord is the Parquet row shape for the quantity table.
type QuantityRecord struct {
	EntityID uint32  `parquet:"entity_id"`
	Type     string  `parquet:"type"`
	Value    float64 `parquet:"value"`
	Formula  string  `parquet:"formula,optional"`
}

// ParquetWriter writes a finished table as a single Parquet row group,
// compressed with Zstd, grounded on the teacher pack's own
// GenericWriter[T]-based columnar sink.
type ParquetWriter struct{}

func NewParquetWriter() *ParquetWriter { return &ParquetWriter{} }

func (w *ParquetWriter) writerConfig() parquet.WriterConfig {
	return parquet.WriterConfig{
		Compression: &parquet.Zstd,
		PageSize:    8 * 1024,
	}
}

func (w *ParquetWriter) WriteEntities(out io.Writer, entities *store.EntityTable, strings *intern.Table) error {
	records := make([]EntityRecord, 0, entities.Len())
	for _, row := range entities.All() {
		records = append(records, EntityRecord{
			ExpressID:         row.ExpressID,
			TypeName:          entities.TypeName(row.TypeEnum),
			GlobalID:          strings.Get(row.GlobalID),
			Name:              strings.Get(row.Name),
			Description:       strings.Get(row.Description),
			ObjectType:        strings.Get(row.ObjectType),
			Flags:             row.Flags,
			ContainedInStorey: row.ContainedInStorey,
			DefinedByType:     row.DefinedByType,
		})
	}

	pw := parquet.NewGenericWriter[EntityRecord](out, w.writerConfig())
	if _, err := pw.Write(records); err != nil {
		return err
	}
	return pw.Close()
}

func (w *ParquetWriter) WriteProperties(out io.Writer, properties *store.PropertyTable, strings *intern.Table) error {
	records := make([]PropertyRecord, 0, properties.Len())
	for i := 0; i < properties.Len(); i++ {
		row := properties.Row(i)
		rec := PropertyRecord{
			EntityID:      row.EntityID,
			PsetName:      strings.Get(row.PsetName),
			PropName:      strings.Get(row.PropName),
			Discriminator: uint8(row.Discriminator),
		}
		switch row.Discriminator {
		case store.PropString:
			if row.ValueString >= 0 {
				rec.ValueString = strings.Get(uint32(row.ValueString))
			}
		case store.PropReal:
			rec.ValueReal = row.ValueReal
		case store.PropInt:
			rec.ValueInt = row.ValueInt
		case store.PropBool:
			if row.ValueBool != 255 {
				b := row.ValueBool == 1
				rec.ValueBool = &b
			}
		}
		records = append(records, rec)
	}

	pw := parquet.NewGenericWriter[PropertyRecord](out, w.writerConfig())
	if _, err := pw.Write(records); err != nil {
		return err
	}
	return pw.Close()
}

func (w *ParquetWriter) WriteQuantities(out io.Writer, quantities *store.QuantityTable, strings *intern.Table) error {
	records := make([]QuantityRecord, 0, quantities.Len())
	for i := 0; i < quantities.Len(); i++ {
		row := quantities.Row(i)
		formula := ""
		if row.Formula >= 0 {
			formula = strings.Get(uint32(row.Formula))
		}
		records = append(records, QuantityRecord{
			EntityID: row.EntityID,
			Type:     quantityTypeName(row.Type),
			Value:    row.Value,
			Formula:  formula,
		})
	}

	pw := parquet.NewGenericWriter[QuantityRecord](out, w.writerConfig())
	if _, err := pw.Write(records); err != nil {
		return err
	}
	return pw.Close()
}
