package telemetry

import (
	"context"

	"github.com/petasbytes/recordshim/internal/metrics"
)

// EmitPayloadFeatures records the shape of a payload passing through command.
// Only counts and shape flags are emitted, never the payload text.
func EmitPayloadFeatures(ctx context.Context, command, payload string) {
	if !ObserveEnabled() {
		return
	}
	callID := CallID(ctx)
	f := metrics.CountFeatures(payload)
	Emit("payload_features", map[string]any{
		"call_id":          callID,
		"command":          command,
		"features_version": "1",
		"payload": map[string]any{
			"bytes":      f.Bytes,
			"runes":      f.Runes,
			"words":      f.Words,
			"lines":      f.Lines,
			"json_valid": f.JSONValid,
			"json_list":  f.JSONList,
			"items":      f.Items,
		},
	})
}
