// Package testutil provides a harness for end-to-end tests that run the full
// application against a temporary input tree.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/topicgraph/internal/app"
	"github.com/specialistvlad/topicgraph/internal/engine"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Result    *engine.Result
	OutputDir string
}

// RunIntegrationTest writes files into a temporary input directory, runs the
// app on input (relative to that directory, or the directory itself when
// empty), and returns the outcome. mutate, when non-nil, adjusts the config
// before the app is created.
func RunIntegrationTest(t *testing.T, files map[string]string, input string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, input, mutate)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, input string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	inputDir := filepath.Join(tmpDir, "input")
	outputDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.Mkdir(inputDir, 0o755))

	// Names may contain subdirectories; they are created as needed.
	for name, content := range files {
		filePath := filepath.Join(inputDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.DefaultConfig()
	cfg.InputPath = filepath.Join(inputDir, input)
	cfg.OutputDir = outputDir
	cfg.LogFormat = "text"
	if mutate != nil {
		mutate(&cfg)
	}

	testApp, logs := app.SetupAppTest(t, &cfg)
	res, err := testApp.Run(ctx)

	return &HarnessResult{
		LogOutput: logs.String(),
		Err:       err,
		Result:    res,
		OutputDir: outputDir,
	}
}
