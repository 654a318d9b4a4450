// Package sdk provides the coordinator for the GenCompute instruction
// execution system.
//
// The SDK turns free-form natural-language instructions into plans of
// dependent tasks and executes them against a versioned in-memory slot
// store. It ties together the lower-level packages: interpret (instruction
// compiler and plan builder), memory (slot store with checkpoints), exec
// (plan runner), functions (leaf function library), reasoning (confidence
// ledger), and llm (provider contract).
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Slots: typed, timestamped storage cells holding task inputs and outputs
//   - Checkpoints: deep snapshots of the whole store that can be restored later
//   - Tasks: classified units of work wired into a dependency plan
//   - Leaves: the functions that actually perform each task kind
//   - Reasoning chain: an indexed ledger of steps with confidence scores
//
// # Getting Started
//
// Create a System, then hand it instructions:
//
//	import "github.com/gencompute/sdk"
//
//	system, err := sdk.NewSystem()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := system.ExecuteInstruction(ctx,
//		"Extract citations from the document, then analyze the results",
//		map[string]any{"document": text})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.PlanText)
//
// Every run captures a checkpoint before the first task executes. If a
// task fails, the store is rolled back to that checkpoint and the error is
// returned; successful runs leave the checkpoint available for explicit
// backtracking:
//
//	retry, err := system.BacktrackAndRetry(ctx, result.CheckpointID,
//		"Summarize the document instead")
//
// # Reasoning
//
// ExecuteWithReasoning records a step on the session's reasoning chain for
// each phase of the run and reports the steps whose confidence fell below
// a threshold:
//
//	reasoned, err := system.ExecuteWithReasoning(ctx, instruction, 0.7)
//	for _, step := range reasoned.LowConfidence {
//		fmt.Printf("review step %d: %s\n", step.Index, step.Description)
//	}
//
// # Skills
//
// Custom leaf functions can be registered and bound to a task kind:
//
//	system.RegisterSkill("wordcount", "Counts words in its input",
//		interpret.KindAnalyze,
//		func(ctx context.Context, input any, params map[string]any) (any, error) {
//			s, _ := input.(string)
//			return len(strings.Fields(s)), nil
//		})
//
// # Observability
//
// The System logs with log/slog and emits OpenTelemetry spans and metrics.
// Both default to no-op implementations; supply real ones with WithTracer
// and WithMeter. Session state can be exported as JSON with
// WriteSessionFile or persisted to Redis through an Archive.
package sdk
