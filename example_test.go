package sdk_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	sdk "github.com/gencompute/sdk"
	"github.com/gencompute/sdk/interpret"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ExampleSystem_ExecuteInstruction() {
	system, err := sdk.NewSystem(sdk.WithLogger(quietLogger()))
	if err != nil {
		log.Fatal(err)
	}

	result, err := system.ExecuteInstruction(context.Background(),
		"Extract the citations from the document, then analyze the results",
		map[string]any{"document": "See [Smith, 2020] for details."})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("completed:", result.Completed)
	fmt.Println("checkpoint:", result.CheckpointID)
	// Output:
	// completed: 2
	// checkpoint: checkpoint_0
}

func ExampleSystem_ExecuteWithReasoning() {
	system, err := sdk.NewSystem(sdk.WithLogger(quietLogger()))
	if err != nil {
		log.Fatal(err)
	}

	result, err := system.ExecuteWithReasoning(context.Background(),
		"Summarize the quarterly report", 0.7)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("steps:", len(result.Steps))
	fmt.Println("low confidence:", len(result.LowConfidence))
	// Output:
	// steps: 4
	// low confidence: 0
}

func ExampleSystem_RegisterSkill() {
	system, err := sdk.NewSystem(sdk.WithLogger(quietLogger()))
	if err != nil {
		log.Fatal(err)
	}

	err = system.RegisterSkill("wordcount", "Counts words in its input",
		interpret.KindAnalyze,
		func(ctx context.Context, input any, params map[string]any) (any, error) {
			text, _ := input.(string)
			return map[string]any{"words": len(strings.Fields(text))}, nil
		})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("functions:", len(system.Status().Functions))
	// Output:
	// functions: 7
}
