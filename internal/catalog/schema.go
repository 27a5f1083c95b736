package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordsSchema describes the normalized item map: item id -> record.
const recordsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "properties": {
      "name": {"type": "string"},
      "gold": {
        "type": "object",
        "properties": {
          "total": {"type": "number", "minimum": 0},
          "purchasable": {"type": "boolean"}
        }
      },
      "from": {
        "type": "array",
        "items": {"type": ["string", "integer"]}
      },
      "maps": {
        "type": "object",
        "additionalProperties": {"type": "boolean"}
      }
    }
  }
}`

var compiledRecords = jsonschema.MustCompileString("catalog-records.schema.json", recordsSchema)

// validateRecords checks the shape of the item map before decoding.
func validateRecords(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := compiledRecords.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return nil
}
