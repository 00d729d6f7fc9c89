// Package commands defines the remotely invocable operations and their contracts.
//
// Includes:
//   - Definition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - save_records: write a payload verbatim to a path.
//   - load_records: read a payload back, "[]" when the path is absent.
package commands
