package dataset

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Internal field names of an infraction record.
const (
	FieldID                  = "id"
	FieldStratum             = "ssb"
	FieldPublicServiceRate   = "esp"
	FieldEstimatedIncome     = "income"
	FieldInfractionType      = "tif"
	FieldFineValue           = "valmul"
	FieldLoadPercentage      = "porcar"
	FieldSafeguardPercentage = "savepor"
	FieldAmountToPay         = "valcan"
)

var requiredFields = []string{
	FieldID,
	FieldStratum,
	FieldPublicServiceRate,
	FieldEstimatedIncome,
	FieldInfractionType,
	FieldFineValue,
	FieldLoadPercentage,
	FieldSafeguardPercentage,
}

var knownFields = append(slices.Clone(requiredFields), FieldAmountToPay)

// Column maps one CSV header to an internal field name.
type Column struct {
	Header string
	Field  string
}

// Schema is the set of CSV columns selected from a dataset, in output order.
type Schema struct {
	Name    string
	Columns []Column
}

// SchemaMulta is the layout with a single combined fine column.
var SchemaMulta = Schema{
	Name: "multa",
	Columns: []Column{
		{Header: "ID", Field: FieldID},
		{Header: "Estrato_socioeconomico", Field: FieldStratum},
		{Header: "Tarifa_servicios_publicos", Field: FieldPublicServiceRate},
		{Header: "Ingreso_estimado", Field: FieldEstimatedIncome},
		{Header: "Tipo_infracción", Field: FieldInfractionType},
		{Header: "Valor_multa", Field: FieldFineValue},
		{Header: "Porcentaje_carga", Field: FieldLoadPercentage},
		{Header: "Porcentaje_salvaguarda", Field: FieldSafeguardPercentage},
	},
}

// SchemaPago is the layout with separate fine and amount-to-pay columns.
var SchemaPago = Schema{
	Name: "pago",
	Columns: []Column{
		{Header: "ID", Field: FieldID},
		{Header: "Estrato_socioeconomico", Field: FieldStratum},
		{Header: "Tarifa_servicios_publicos", Field: FieldPublicServiceRate},
		{Header: "Ingreso_estimado", Field: FieldEstimatedIncome},
		{Header: "Tipo_Infraccion", Field: FieldInfractionType},
		{Header: "Valor_multa", Field: FieldFineValue},
		{Header: "Porcentaje_carga", Field: FieldLoadPercentage},
		{Header: "Porcentaje_salvaguarda", Field: FieldSafeguardPercentage},
		{Header: "Valor_cancelar", Field: FieldAmountToPay},
	},
}

// SchemaAuto is resolved against the header row: the first built-in schema
// whose columns are all present wins.
var SchemaAuto = Schema{Name: "auto"}

// builtinSchemas is ordered from the widest layout to the narrowest.
var builtinSchemas = []Schema{SchemaPago, SchemaMulta}

// SchemaByName returns a built-in schema. "custom" is not built in; use NewSchema.
func SchemaByName(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return SchemaAuto, nil
	case "multa":
		return SchemaMulta, nil
	case "pago":
		return SchemaPago, nil
	default:
		return Schema{}, fmt.Errorf("unknown dataset schema %q", name)
	}
}

// NewSchema builds a custom schema from a field -> header mapping. All the
// required fields must be mapped; the amount to pay is optional.
func NewSchema(name string, mapping map[string]string) (Schema, error) {
	var missing []string
	for _, field := range requiredFields {
		if strings.TrimSpace(mapping[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return Schema{}, fmt.Errorf("column mapping is missing fields: %s", strings.Join(missing, ", "))
	}

	var unknown []string
	for field := range mapping {
		if !slices.Contains(knownFields, field) {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Schema{}, fmt.Errorf("column mapping has unknown fields: %s", strings.Join(unknown, ", "))
	}

	schema := Schema{Name: name}
	for _, field := range knownFields {
		header, ok := mapping[field]
		if !ok {
			continue
		}
		schema.Columns = append(schema.Columns, Column{Header: strings.TrimSpace(header), Field: field})
	}
	return schema, nil
}

// LoadSchemaFile reads a custom column mapping from a YAML file of the form
//
//	name: municipal
//	columns:
//	  id: Codigo
//	  ssb: Estrato
func LoadSchemaFile(path string) (Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("error reading schema file: %w", err)
	}

	var doc struct {
		Name    string            `yaml:"name"`
		Columns map[string]string `yaml:"columns"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Schema{}, fmt.Errorf("error parsing schema file %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = "custom"
	}
	return NewSchema(doc.Name, doc.Columns)
}

// HasField reports whether the schema selects the given internal field.
func (s Schema) HasField(field string) bool {
	for _, c := range s.Columns {
		if c.Field == field {
			return true
		}
	}
	return false
}

// resolve picks the concrete schema for the given header row.
func (s Schema) resolve(header []string) (Schema, error) {
	if len(s.Columns) > 0 {
		if missing := s.missingColumns(header); len(missing) > 0 {
			return Schema{}, &MissingColumnsError{Schema: s.Name, Columns: missing}
		}
		return s, nil
	}

	for _, candidate := range builtinSchemas {
		if len(candidate.missingColumns(header)) == 0 {
			return candidate, nil
		}
	}
	// Report against the narrowest layout, it needs the fewest columns.
	narrowest := builtinSchemas[len(builtinSchemas)-1]
	return Schema{}, &MissingColumnsError{Schema: s.Name, Columns: narrowest.missingColumns(header)}
}

func (s Schema) missingColumns(header []string) []string {
	var missing []string
	for _, c := range s.Columns {
		if !slices.Contains(header, c.Header) {
			missing = append(missing, c.Header)
		}
	}
	return missing
}
