package schema

import "embed"

// EmbeddedSchemas contains the bundled XSD files.
//
//go:embed schemas/*.xsd
var EmbeddedSchemas embed.FS

// DefaultSchemaPath is the location of the bundled palette schema inside
// EmbeddedSchemas. It is used when no override schema is configured.
const DefaultSchemaPath = "schemas/palette.xsd"

// DefaultSchema returns the bundled palette schema source.
func DefaultSchema() (string, bool) {
	data, err := EmbeddedSchemas.ReadFile(DefaultSchemaPath)
	if err != nil {
		return "", false
	}
	return string(data), true
}
