package commands

import (
	"context"
	"encoding/json"
	"fmt"
)

const LoadRecordsName = "load_records"

type LoadRequest struct {
	Path string `json:"path" jsonschema_description:"File path to read. Returns [] when nothing exists there yet."`
}

var LoadRecordsInputSchema = GenerateSchema[LoadRequest]()

// LoadRecordsDefinition binds load_records to store.
func LoadRecordsDefinition(store Store) Definition {
	return Definition{
		Name:        LoadRecordsName,
		Description: "Read the full text stored at a file path. When the path does not exist the literal [] is returned instead of an error.",
		InputSchema: LoadRecordsInputSchema,
		Function:    LoadRecords(store),
	}
}

// LoadRecords returns the load_records handler.
func LoadRecords(store Store) Function {
	return func(_ context.Context, input json.RawMessage) (string, error) {
		var in struct {
			Path *string `json:"path"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return "", fmt.Errorf("invalid %s input: %w", LoadRecordsName, err)
		}
		if in.Path == nil {
			return "", fmt.Errorf("invalid %s input: missing field `path`", LoadRecordsName)
		}
		return store.Load(*in.Path)
	}
}
