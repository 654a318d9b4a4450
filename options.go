package sdk

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/gencompute/sdk/functions"
	"github.com/gencompute/sdk/interpret"
	"github.com/gencompute/sdk/llm"
)

// SystemOption configures a System.
type SystemOption func(*systemConfig)

// systemConfig holds configuration for a System instance.
type systemConfig struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	compiler *interpret.Compiler
	library  *functions.Library
	provider llm.Provider
	archive  Archive
}

// WithLogger sets a custom logger for the system.
// If not provided, a default JSON logger writing to stdout is created.
func WithLogger(logger *slog.Logger) SystemOption {
	return func(c *systemConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing.
// If not provided, spans are recorded against a no-op tracer.
func WithTracer(tracer trace.Tracer) SystemOption {
	return func(c *systemConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for metric collection.
// If not provided, instruments are created against a no-op meter.
func WithMeter(meter metric.Meter) SystemOption {
	return func(c *systemConfig) {
		c.meter = meter
	}
}

// WithCompiler replaces the default instruction compiler. Use
// interpret.NewCompilerFromConfig to build one from a custom pattern table.
func WithCompiler(compiler *interpret.Compiler) SystemOption {
	return func(c *systemConfig) {
		c.compiler = compiler
	}
}

// WithLibrary replaces the default function library. The library supplies
// the leaf functions bound to each task kind.
func WithLibrary(library *functions.Library) SystemOption {
	return func(c *systemConfig) {
		c.library = library
	}
}

// WithProvider sets the LLM provider used by generation leaves.
// If not provided, a deterministic mock provider is used.
func WithProvider(provider llm.Provider) SystemOption {
	return func(c *systemConfig) {
		c.provider = provider
	}
}

// WithArchive sets a session archive. When configured, the system writes
// a session export to the archive on Close.
func WithArchive(archive Archive) SystemOption {
	return func(c *systemConfig) {
		c.archive = archive
	}
}
