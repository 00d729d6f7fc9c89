// Package invoke is the boundary between callers and the command catalogue.
//
// Responsibilities:
//   - Dispatch a named command with its raw JSON input.
//   - Render failures to plain message text; the internal error kind is kept for telemetry only.
//   - Emit command_exec and payload_features events.
//   - Present the catalogue as Anthropic tools and answer tool_use blocks.
package invoke
