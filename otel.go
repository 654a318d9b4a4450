package sdk

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// systemMetrics holds the OpenTelemetry metric instruments for the system.
// These are created once in NewSystem and reused for every execution.
type systemMetrics struct {
	// instructionCounter increments for each instruction executed
	instructionCounter metric.Int64Counter

	// taskCounter increments for each task completed
	taskCounter metric.Int64Counter

	// durationHistogram records instruction execution duration in milliseconds
	durationHistogram metric.Float64Histogram

	// confidenceHistogram records reasoning step confidence (0.0 to 1.0)
	confidenceHistogram metric.Float64Histogram
}

// newSystemMetrics creates and initializes all OpenTelemetry metric
// instruments against the provided meter.
func newSystemMetrics(meter metric.Meter) (*systemMetrics, error) {
	m := &systemMetrics{}
	var err error

	m.instructionCounter, err = meter.Int64Counter(
		"sdk.instructions",
		metric.WithDescription("Number of instructions executed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create instruction counter: %w", err)
	}

	m.taskCounter, err = meter.Int64Counter(
		"sdk.tasks",
		metric.WithDescription("Number of tasks completed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create task counter: %w", err)
	}

	m.durationHistogram, err = meter.Float64Histogram(
		"sdk.instruction.duration",
		metric.WithDescription("Instruction execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	m.confidenceHistogram, err = meter.Float64Histogram(
		"sdk.reasoning.confidence",
		metric.WithDescription("Reasoning step confidence from 0.0 (lowest) to 1.0 (highest)"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create confidence histogram: %w", err)
	}

	return m, nil
}
