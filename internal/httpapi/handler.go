// Package httpapi exposes the command catalogue over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/recordshim/commands"
	"github.com/petasbytes/recordshim/internal/invoke"
	"github.com/petasbytes/recordshim/internal/telemetry"
)

// CallIDHeader carries the per-request call ID in both directions.
const CallIDHeader = "X-Call-ID"

// Response is the JSON body of an invocation.
type Response struct {
	OK bool `json:"ok"`
	// Result is omitted for commands that return nothing, such as save_records.
	Result *string `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Handler handles HTTP requests and responses
type Handler struct {
	dispatcher *invoke.Dispatcher
	maxBody    int64
}

// New creates a handler that caps request bodies at maxBody bytes.
func New(dispatcher *invoke.Dispatcher, maxBody int64) *Handler {
	return &Handler{dispatcher: dispatcher, maxBody: maxBody}
}

// Routes returns the mux serving every endpoint.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /invoke/{command}", h.InvokeHandler)
	mux.HandleFunc("GET /commands", h.CommandsHandler)
	mux.HandleFunc("POST /tool_use", h.ToolUseHandler)
	mux.HandleFunc("GET /tools", h.ToolsHandler)
	return mux
}

// InvokeHandler runs the command named in the path with the request body as input.
func (h *Handler) InvokeHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("command")
	if !h.dispatcher.Has(name) {
		writeJSON(w, http.StatusNotFound, Response{Error: invoke.ErrCommandNotFound.Error()})
		return
	}

	ctx, callID := h.callContext(w, r)
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	res := h.dispatcher.Invoke(ctx, name, body)
	if !res.OK() {
		log.Printf("%s failed, call_id: %s, kind: %s", name, callID, res.Kind)
		writeJSON(w, http.StatusUnprocessableEntity, Response{Error: res.Error})
		return
	}

	resp := Response{OK: true}
	if name != commands.SaveRecordsName {
		out := res.Output
		resp.Result = &out
	}
	writeJSON(w, http.StatusOK, resp)
}

// ToolUseHandler answers the tool_use blocks of an assistant message. The
// response is the user message carrying one tool_result per tool_use, ready
// to append to the conversation.
func (h *Handler) ToolUseHandler(w http.ResponseWriter, r *http.Request) {
	ctx, callID := h.callContext(w, r)
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var msg anthropic.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "invalid message: " + err.Error()})
		return
	}

	results := h.dispatcher.HandleMessage(ctx, &msg)
	if len(results) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, Response{Error: "message has no tool_use blocks"})
		return
	}
	log.Printf("answered %d tool_use blocks, call_id: %s", len(results), callID)
	writeJSON(w, http.StatusOK, anthropic.NewUserMessage(results...))
}

// ToolsHandler lists the catalogue as Anthropic tool definitions.
func (h *Handler) ToolsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dispatcher.Tools())
}

// CommandsHandler lists the catalogue with input schemas.
func (h *Handler) CommandsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dispatcher.Commands)
}

// callContext tags the request context with the caller's call ID, or a fresh
// one, and echoes it back.
func (h *Handler) callContext(w http.ResponseWriter, r *http.Request) (context.Context, string) {
	ctx, callID := telemetry.EnsureCallID(r.Context(), r.Header.Get(CallIDHeader))
	w.Header().Set(CallIDHeader, callID)
	return ctx, callID
}

// readBody reads the capped request body. On failure it has already written
// the error response.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, Response{Error: "request body too large"})
			return nil, false
		}
		log.Printf("Error reading body: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{Error: "error reading request body"})
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
