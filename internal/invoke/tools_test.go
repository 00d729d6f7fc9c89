package invoke_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestTools_MirrorCatalogue(t *testing.T) {
	d := newDispatcher()
	params := d.Tools()
	if len(params) != len(d.Commands) {
		t.Fatalf("got %d tools want %d", len(params), len(d.Commands))
	}
	for i, p := range params {
		if p.OfTool == nil {
			t.Fatalf("tool %d is not a custom tool", i)
		}
		if p.OfTool.Name != d.Commands[i].Name {
			t.Fatalf("tool %d name %q want %q", i, p.OfTool.Name, d.Commands[i].Name)
		}
	}
}

func TestToolResult_SuccessAndError(t *testing.T) {
	d := newDispatcher()
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "x.json")

	ok := d.ToolResult(ctx, "toolu_1", "save_records", json.RawMessage(`{"path":`+quote(p)+`,"data":"[]"}`))
	if ok.OfToolResult == nil || ok.OfToolResult.ToolUseID != "toolu_1" {
		t.Fatalf("unexpected block: %#v", ok)
	}
	if ok.OfToolResult.IsError.Value {
		t.Fatal("expected success result")
	}

	bad := d.ToolResult(ctx, "toolu_2", "missing_command", json.RawMessage(`{}`))
	if bad.OfToolResult == nil || bad.OfToolResult.ToolUseID != "toolu_2" {
		t.Fatalf("unexpected block: %#v", bad)
	}
	if !bad.OfToolResult.IsError.Value {
		t.Fatal("expected error result")
	}
}

func TestHandleMessage_AnswersToolUses(t *testing.T) {
	d := newDispatcher()
	p := filepath.Join(t.TempDir(), "absent.json")

	raw := `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-3-7-sonnet-latest",
		"content": [
			{"type": "text", "text": "loading"},
			{"type": "tool_use", "id": "t1", "name": "load_records", "input": {"path": ` + quote(p) + `}}
		]
	}`
	var msg anthropic.Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}

	results := d.HandleMessage(context.Background(), &msg)
	if len(results) != 1 {
		t.Fatalf("expected 1 tool result, got %d", len(results))
	}
	tr := results[0].OfToolResult
	if tr == nil || tr.ToolUseID != "t1" || tr.IsError.Value {
		t.Fatalf("unexpected result: %#v", results[0])
	}
	if len(tr.Content) != 1 || tr.Content[0].OfText == nil || tr.Content[0].OfText.Text != "[]" {
		t.Fatalf("expected [] content, got %#v", tr.Content)
	}
}
