package commands

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// Function runs a command against its raw JSON input and returns its text output.
type Function func(ctx context.Context, input json.RawMessage) (string, error)

type Definition struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	InputSchema anthropic.ToolInputSchemaParam `json:"input_schema"`
	Function    Function                       `json:"-"`
}

// Store is the persistence surface the commands run against.
type Store interface {
	Save(path, data string) error
	Load(path string) (string, error)
}

// GenerateSchema reflects T into the object schema advertised for a command's input.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
		Required:   schema.Required,
	}
}
