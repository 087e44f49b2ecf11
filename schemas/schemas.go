// Package schemas embeds the JSON Schemas used to validate input documents.
package schemas

import _ "embed"

// RecordSchemaJSON is the JSON Schema for a single conversation record line.
//
//go:embed record.schema.json
var RecordSchemaJSON string
