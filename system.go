package sdk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	mnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/gencompute/sdk/exec"
	"github.com/gencompute/sdk/functions"
	"github.com/gencompute/sdk/interpret"
	"github.com/gencompute/sdk/llm"
	"github.com/gencompute/sdk/memory"
	"github.com/gencompute/sdk/reasoning"
)

// kindBindings maps each task kind to the name of the library function
// that serves it. Orchestrate is deliberately unbound; unmatched clauses
// fall through to the runner's degraded result.
var kindBindings = map[interpret.TaskKind]string{
	interpret.KindExtract:   "citation",
	interpret.KindTransform: "transform",
	interpret.KindAnalyze:   "analyze",
	interpret.KindGenerate:  "generate",
	interpret.KindValidate:  "validate",
}

// System is the coordinator that ties the instruction compiler, the slot
// store, the function library, and the task runner together. It owns one
// session: a store, a reasoning chain, and a monotonically growing set of
// checkpoints.
//
// A System is not safe for concurrent use. Create one per session.
type System struct {
	sessionID string

	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *systemMetrics
	compiler *interpret.Compiler
	library  *functions.Library
	provider llm.Provider
	archive  Archive

	store  *memory.Store
	runner *exec.Runner
	chain  *reasoning.Chain

	checkpoints int
}

// Execution reports the outcome of a single instruction run.
type Execution struct {
	// SessionID identifies the owning session.
	SessionID string

	// Instruction is the free-form text that was executed.
	Instruction string

	// PlanID identifies the compiled plan.
	PlanID string

	// PlanText is a human-readable rendering of the plan.
	PlanText string

	// CheckpointID names the checkpoint captured before the run started.
	CheckpointID string

	// Completed counts the tasks that produced a result.
	Completed int

	// Results maps task IDs to the values their leaves produced.
	Results map[string]any

	// Usage is the store usage after the run.
	Usage memory.Usage
}

// ReasonedExecution pairs an execution with the reasoning steps recorded
// while producing it.
type ReasonedExecution struct {
	Execution *Execution

	// Steps holds the reasoning steps appended during this run.
	Steps []reasoning.Step

	// LowConfidence holds the steps whose confidence fell below the
	// requested threshold.
	LowConfidence []reasoning.Step

	// ChainText is a human-readable rendering of the full chain.
	ChainText string
}

// SystemStatus is a point-in-time summary of a session.
type SystemStatus struct {
	SessionID string
	Usage     memory.Usage
	Functions []functions.Signature
	Actions   int
	Steps     int
}

// NewSystem creates a coordinator with the provided options. Missing
// options fall back to working defaults: a JSON logger on stdout, no-op
// telemetry, the built-in English pattern table, a mock LLM provider,
// and the default function library.
func NewSystem(opts ...SystemOption) (*System, error) {
	cfg := &systemConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if cfg.tracer == nil {
		cfg.tracer = noop.NewTracerProvider().Tracer("gencompute-sdk")
	}
	if cfg.meter == nil {
		cfg.meter = mnoop.NewMeterProvider().Meter("gencompute-sdk")
	}
	if cfg.compiler == nil {
		cfg.compiler = interpret.NewCompiler()
	}
	if cfg.provider == nil {
		cfg.provider = llm.NewMockProvider()
	}
	if cfg.library == nil {
		cfg.library = functions.DefaultLibrary(cfg.provider)
	}

	metrics, err := newSystemMetrics(cfg.meter)
	if err != nil {
		return nil, &SDKError{Op: "NewSystem", Kind: KindInternal, Err: err}
	}

	s := &System{
		sessionID: "session_" + uuid.NewString(),
		logger:    cfg.logger,
		tracer:    cfg.tracer,
		metrics:   metrics,
		compiler:  cfg.compiler,
		library:   cfg.library,
		provider:  cfg.provider,
		archive:   cfg.archive,
		store:     memory.NewStore(),
		runner:    exec.NewRunner().WithTracer(cfg.tracer),
		chain:     reasoning.NewChain(),
	}

	for kind, name := range kindBindings {
		if leaf, ok := s.library.Get(name); ok {
			s.runner.Register(kind, leaf)
		}
	}

	s.logger.Info("system created", "session_id", s.sessionID,
		"functions", s.library.Len())
	return s, nil
}

// SessionID returns the identifier of this session.
func (s *System) SessionID() string {
	return s.sessionID
}

// Store exposes the session's slot store for direct inspection.
func (s *System) Store() *memory.Store {
	return s.store
}

// Chain exposes the session's reasoning chain.
func (s *System) Chain() *reasoning.Chain {
	return s.chain
}

// RegisterSkill adds a leaf function to the library and binds it to the
// given task kind, replacing any previous binding for that kind.
func (s *System) RegisterSkill(name, description string, kind interpret.TaskKind, leaf exec.Leaf) error {
	if !kind.IsValid() {
		return &SDKError{
			Op:   "System.RegisterSkill",
			Kind: KindValidation,
			Err:  fmt.Errorf("invalid task kind %q", kind),
		}
	}
	s.library.Register(name, description, leaf)
	s.runner.Register(kind, leaf)
	s.logger.Info("skill registered", "name", name, "kind", kind.String())
	return nil
}

// ExecuteInstruction compiles the instruction into a plan, snapshots the
// store, and runs the plan. Context data is written into context slots
// ("context_<key>") before compilation so early tasks can consume it.
//
// A checkpoint is always captured before the first task runs. If any task
// fails, the store is restored to that checkpoint and the leaf error is
// returned wrapped in an SDKError.
func (s *System) ExecuteInstruction(ctx context.Context, instruction string, contextData map[string]any) (*Execution, error) {
	const op = "System.ExecuteInstruction"

	ctx, span := s.tracer.Start(ctx, "sdk.execute_instruction",
		trace.WithAttributes(attribute.String("instruction", instruction)))
	defer span.End()

	start := time.Now()

	for key, value := range contextData {
		s.store.Allocate("context_"+key, memory.KindContext, value, map[string]any{
			"source": "instruction_context",
		})
	}

	tasks := s.compiler.Compile(instruction)
	if len(tasks) == 0 {
		err := wrapError(op, fmt.Errorf("%w: %q", ErrEmptyInstruction, instruction))
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty instruction")
		return nil, err
	}

	plan, err := interpret.BuildPlan(tasks)
	if err != nil {
		err = wrapError(op, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan build failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("plan.id", plan.ID),
		attribute.Int("plan.tasks", len(plan.Tasks)),
	)

	checkpointID := s.nextCheckpointID()
	s.store.CreateCheckpoint(checkpointID, "Before executing: "+instruction)

	s.logger.Info("executing instruction",
		"session_id", s.sessionID,
		"plan_id", plan.ID,
		"tasks", len(plan.Tasks),
		"checkpoint_id", checkpointID)

	summary, err := s.runner.Run(ctx, plan, s.store)
	if err != nil {
		// Roll back to the pre-run snapshot so a failed plan leaves
		// no partial writes behind.
		if restoreErr := s.store.RestoreCheckpoint(checkpointID); restoreErr != nil {
			s.logger.Error("rollback failed", "checkpoint_id", checkpointID, "error", restoreErr)
		}
		err = wrapError(op, fmt.Errorf("%w: %w", ErrExecutionFailed, err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "execution failed")
		s.logger.Error("instruction failed", "plan_id", plan.ID, "error", err)
		return nil, err
	}

	elapsed := float64(time.Since(start).Milliseconds())
	s.metrics.instructionCounter.Add(ctx, 1)
	s.metrics.taskCounter.Add(ctx, int64(summary.Completed))
	s.metrics.durationHistogram.Record(ctx, elapsed)
	span.SetStatus(codes.Ok, "")

	s.logger.Info("instruction completed",
		"plan_id", plan.ID,
		"completed", summary.Completed,
		"duration_ms", elapsed)

	return &Execution{
		SessionID:    s.sessionID,
		Instruction:  instruction,
		PlanID:       plan.ID,
		PlanText:     plan.Visualize(),
		CheckpointID: checkpointID,
		Completed:    summary.Completed,
		Results:      summary.Results,
		Usage:        s.store.Usage(),
	}, nil
}

// ExecuteWithReasoning runs an instruction while recording a step on the
// reasoning chain for each phase: parsing, planning, and execution. Steps
// whose confidence falls below threshold are collected in the result.
func (s *System) ExecuteWithReasoning(ctx context.Context, instruction string, threshold float64) (*ReasonedExecution, error) {
	const op = "System.ExecuteWithReasoning"

	ctx, span := s.tracer.Start(ctx, "sdk.execute_with_reasoning")
	defer span.End()

	before := s.chain.Len()

	step := s.chain.Append(
		"Parse instruction",
		fmt.Sprintf("received %d characters of free-form text", len(instruction)),
		1.0, "")
	s.metrics.confidenceHistogram.Record(ctx, step.Confidence)

	tasks := s.compiler.Compile(instruction)
	step = s.chain.Append(
		"Segment into tasks",
		fmt.Sprintf("compiler produced %d tasks", len(tasks)),
		0.9, "")
	s.metrics.confidenceHistogram.Record(ctx, step.Confidence)

	if len(tasks) == 0 {
		err := wrapError(op, fmt.Errorf("%w: %q", ErrEmptyInstruction, instruction))
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty instruction")
		return nil, err
	}

	plan, err := interpret.BuildPlan(tasks)
	if err != nil {
		err = wrapError(op, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan build failed")
		return nil, err
	}

	checkpointID := s.nextCheckpointID()
	s.store.CreateCheckpoint(checkpointID, "Before executing: "+instruction)

	step = s.chain.Append(
		"Build execution plan",
		fmt.Sprintf("plan %s orders tasks %v", plan.ID, plan.Order),
		0.85, checkpointID)
	s.metrics.confidenceHistogram.Record(ctx, step.Confidence)

	summary, err := s.runner.Run(ctx, plan, s.store)
	if err != nil {
		if restoreErr := s.store.RestoreCheckpoint(checkpointID); restoreErr != nil {
			s.logger.Error("rollback failed", "checkpoint_id", checkpointID, "error", restoreErr)
		}
		step = s.chain.Append(
			"Execution aborted",
			fmt.Sprintf("restored %s after failure: %v", checkpointID, err),
			0.3, checkpointID)
		s.metrics.confidenceHistogram.Record(ctx, step.Confidence)
		err = wrapError(op, fmt.Errorf("%w: %w", ErrExecutionFailed, err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "execution failed")
		return nil, err
	}

	step = s.chain.Append(
		"Execution completed",
		fmt.Sprintf("%d of %d tasks completed", summary.Completed, len(plan.Tasks)),
		0.95, checkpointID)
	s.metrics.confidenceHistogram.Record(ctx, step.Confidence)

	s.metrics.instructionCounter.Add(ctx, 1)
	s.metrics.taskCounter.Add(ctx, int64(summary.Completed))
	span.SetStatus(codes.Ok, "")

	steps := s.chain.Steps()[before:]
	low := s.chain.LowConfidence(threshold)

	s.logger.Info("reasoned execution completed",
		"plan_id", plan.ID,
		"steps", len(steps),
		"low_confidence", len(low))

	return &ReasonedExecution{
		Execution: &Execution{
			SessionID:    s.sessionID,
			Instruction:  instruction,
			PlanID:       plan.ID,
			PlanText:     plan.Visualize(),
			CheckpointID: checkpointID,
			Completed:    summary.Completed,
			Results:      summary.Results,
			Usage:        s.store.Usage(),
		},
		Steps:         steps,
		LowConfidence: low,
		ChainText:     s.chain.Visualize(),
	}, nil
}

// BacktrackAndRetry restores the store to a previously captured checkpoint
// and executes a new instruction from that state. Returns KindNotFound if
// the checkpoint does not exist; the store is left unmodified in that case.
func (s *System) BacktrackAndRetry(ctx context.Context, checkpointID, instruction string) (*Execution, error) {
	const op = "System.BacktrackAndRetry"

	if err := s.store.RestoreCheckpoint(checkpointID); err != nil {
		return nil, wrapError(op, err)
	}

	s.chain.Append(
		"Backtrack",
		"restored store state from "+checkpointID,
		0.8, checkpointID)

	s.logger.Info("backtracked", "checkpoint_id", checkpointID)
	return s.ExecuteInstruction(ctx, instruction, nil)
}

// Status returns a point-in-time summary of the session.
func (s *System) Status() SystemStatus {
	return SystemStatus{
		SessionID: s.sessionID,
		Usage:     s.store.Usage(),
		Functions: s.library.Signatures(),
		Actions:   len(s.store.Log()),
		Steps:     s.chain.Len(),
	}
}

// Close flushes the session to the archive, if one is configured.
func (s *System) Close(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}
	if err := s.archive.SaveSession(ctx, s.ExportSession()); err != nil {
		return &SDKError{Op: "System.Close", Kind: KindInternal, Err: err}
	}
	s.logger.Info("session archived", "session_id", s.sessionID)
	return nil
}

func (s *System) nextCheckpointID() string {
	id := fmt.Sprintf("checkpoint_%d", s.checkpoints)
	s.checkpoints++
	return id
}
