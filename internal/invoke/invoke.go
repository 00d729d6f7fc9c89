package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/petasbytes/recordshim/commands"
	"github.com/petasbytes/recordshim/internal/fsops"
	"github.com/petasbytes/recordshim/internal/telemetry"
)

// ErrCommandNotFound is reported for names missing from the catalogue.
var ErrCommandNotFound = errors.New("command not found")

// Result is the outcome of one invocation as seen by a caller.
type Result struct {
	Output string
	// Error is the failure message; empty on success.
	Error string
	// Kind classifies the failure for telemetry. Not part of the caller contract.
	Kind string
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool { return r.Kind == "" }

type Dispatcher struct {
	Commands []commands.Definition
}

func New(defs []commands.Definition) *Dispatcher {
	return &Dispatcher{Commands: defs}
}

// Has reports whether name is in the catalogue.
func (d *Dispatcher) Has(name string) bool {
	_, ok := commands.Lookup(d.Commands, name)
	return ok
}

// Invoke runs the command called name. It blocks until the command finishes;
// filesystem work is not interrupted by ctx.
func (d *Dispatcher) Invoke(ctx context.Context, name string, input json.RawMessage) Result {
	callID := telemetry.CallID(ctx)
	start := time.Now()

	// Helper to emit a command_exec event
	emit := func(res Result) {
		fields := map[string]any{
			"command":     name,
			"call_id":     callID,
			"duration_ms": time.Since(start).Milliseconds(),
			"input_size":  len(input),
			"output_size": len(res.Output),
		}
		// Only the kind is recorded; messages may contain caller paths.
		if res.OK() {
			fields["error"] = nil
		} else {
			fields["error"] = res.Kind
		}
		telemetry.Emit("command_exec", fields)
	}

	def, ok := commands.Lookup(d.Commands, name)
	if !ok {
		res := failure(ErrCommandNotFound, "unknown_command")
		emit(res)
		return res
	}

	out, err := def.Function(ctx, input)
	if err != nil {
		res := failure(err, kindOf(err))
		emit(res)
		return res
	}

	res := Result{Output: out}
	emit(res)
	d.emitFeatures(ctx, name, input, out)
	return res
}

func (d *Dispatcher) emitFeatures(ctx context.Context, name string, input json.RawMessage, out string) {
	if !telemetry.ObserveEnabled() {
		return
	}
	switch name {
	case commands.SaveRecordsName:
		if req, err := commands.DecodeSaveRequest(input); err == nil {
			telemetry.EmitPayloadFeatures(ctx, name, req.Data)
		}
	case commands.LoadRecordsName:
		telemetry.EmitPayloadFeatures(ctx, name, out)
	}
}

func failure(err error, kind string) Result {
	msg := err.Error()
	if msg == "" {
		msg = kind
	}
	return Result{Error: msg, Kind: kind}
}

func kindOf(err error) string {
	var fe *fsops.Error
	if errors.As(err, &fe) {
		return fe.Kind.String()
	}
	return "invalid_input"
}
