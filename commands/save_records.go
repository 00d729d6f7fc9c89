package commands

import (
	"context"
	"encoding/json"
	"fmt"
)

const SaveRecordsName = "save_records"

// SaveRequest is the payload of a save call. It is built per call and dropped afterwards.
type SaveRequest struct {
	Path string `json:"path" jsonschema_description:"File path to write; created or truncated. Parent directories must exist."`
	Data string `json:"data" jsonschema_description:"Text written verbatim, typically a JSON list of records."`
}

// saveInput accepts the flat form {"path","data"} and the wrapped form
// {"req":{"path","data"}} sent by front-ends that name the argument.
type saveInput struct {
	Path *string         `json:"path"`
	Data *string         `json:"data"`
	Req  json.RawMessage `json:"req"`
}

var SaveRecordsInputSchema = GenerateSchema[SaveRequest]()

// SaveRecordsDefinition binds save_records to store.
func SaveRecordsDefinition(store Store) Definition {
	return Definition{
		Name:        SaveRecordsName,
		Description: "Write data verbatim to a file path, replacing any existing content. Parent directories are not created.",
		InputSchema: SaveRecordsInputSchema,
		Function:    SaveRecords(store),
	}
}

// SaveRecords returns the save_records handler. Success produces empty output.
func SaveRecords(store Store) Function {
	return func(_ context.Context, input json.RawMessage) (string, error) {
		req, err := DecodeSaveRequest(input)
		if err != nil {
			return "", err
		}
		if err := store.Save(req.Path, req.Data); err != nil {
			return "", err
		}
		return "", nil
	}
}

// DecodeSaveRequest parses either accepted input form and requires both fields.
func DecodeSaveRequest(input json.RawMessage) (SaveRequest, error) {
	var in saveInput
	if err := json.Unmarshal(input, &in); err != nil {
		return SaveRequest{}, fmt.Errorf("invalid %s input: %w", SaveRecordsName, err)
	}
	if len(in.Req) > 0 && in.Path == nil && in.Data == nil {
		var inner saveInput
		if err := json.Unmarshal(in.Req, &inner); err != nil {
			return SaveRequest{}, fmt.Errorf("invalid %s input: req: %w", SaveRecordsName, err)
		}
		in = inner
	}
	if in.Path == nil {
		return SaveRequest{}, fmt.Errorf("invalid %s input: missing field `path`", SaveRecordsName)
	}
	if in.Data == nil {
		return SaveRequest{}, fmt.Errorf("invalid %s input: missing field `data`", SaveRecordsName)
	}
	return SaveRequest{Path: *in.Path, Data: *in.Data}, nil
}
