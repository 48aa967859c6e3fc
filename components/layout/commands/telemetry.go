package commands

import "context"

// Telemetry receives one record per executed command.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a plain function to the Telemetry interface.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record calls f.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// normalizeTelemetry substitutes a noop recorder for a nil one so
// commands never have to nil-check before recording.
func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
