package validate

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaJSON is the entity-relationship schema the extraction prompts embed
// and merged documents are validated against.
//
//go:embed dataset.schema.json
var SchemaJSON string

var (
	once    sync.Once
	schema  *jsonschema.Schema
	loadErr error
)

func load() {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("dataset.schema.json", strings.NewReader(SchemaJSON)); err != nil {
		loadErr = err
		return
	}
	s, err := c.Compile("dataset.schema.json")
	if err != nil {
		loadErr = err
		return
	}
	schema = s
}

// Document validates a merged document against the dataset schema.
func Document(doc map[string]any) error {
	once.Do(load)
	if loadErr != nil {
		return loadErr
	}
	// round-trip so nested values are plain JSON types
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
