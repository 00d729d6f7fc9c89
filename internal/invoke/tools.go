package invoke

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
)

// Tools presents the catalogue as Anthropic tool definitions so a model-driven
// front-end can call the same operations.
func (d *Dispatcher) Tools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(d.Commands))
	for _, c := range d.Commands {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        c.Name,
			Description: anthropic.String(c.Description),
			InputSchema: c.InputSchema,
		}})
	}
	return out
}

// ToolResult runs a tool_use request and answers it with a tool_result block.
// Failures become error results carrying the message text.
func (d *Dispatcher) ToolResult(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	res := d.Invoke(ctx, name, input)
	if !res.OK() {
		return anthropic.NewToolResultBlock(id, res.Error, true)
	}
	out := res.Output
	if out == "" {
		// Saves produce no output; acknowledge them explicitly.
		out = "OK"
	}
	return anthropic.NewToolResultBlock(id, out, false)
}

// HandleMessage answers every tool_use block in msg, in order.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *anthropic.Message) []anthropic.ContentBlockParamUnion {
	results := []anthropic.ContentBlockParamUnion{}
	for _, block := range msg.Content {
		if v, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			// Pass raw JSON input through to the command
			input := json.RawMessage(v.JSON.Input.Raw())
			results = append(results, d.ToolResult(ctx, v.ID, v.Name, input))
		}
	}
	return results
}
