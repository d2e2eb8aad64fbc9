package core

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfigForValidation(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Port:          8090,
		Workers:       2,
		AssetTimeout:  3 * time.Second,
		EncodeTimeout: 10 * time.Second,
		OutputDir:     t.TempDir(),
	}
}

func TestRunStartupValidation_PassesWithWarnings(t *testing.T) {
	cfg := validConfigForValidation(t)

	var out bytes.Buffer
	result := RunStartupValidation(cfg, &out)

	if !result.Success {
		t.Fatalf("expected success, steps: %+v", result.Steps)
	}
	if len(result.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(result.Steps))
	}
	if result.Steps[0].Status != StepPassed {
		t.Errorf("output dir step should pass, got %+v", result.Steps[0])
	}
	// No font path and no share hook are warnings, not failures.
	if result.Steps[1].Status != StepWarning {
		t.Errorf("font step should warn, got %+v", result.Steps[1])
	}
	if result.Steps[2].Status != StepWarning {
		t.Errorf("share hook step should warn, got %+v", result.Steps[2])
	}
	if !strings.Contains(out.String(), "output directory") {
		t.Errorf("progress output missing step name: %q", out.String())
	}
}

func TestRunStartupValidation_MissingFontFails(t *testing.T) {
	cfg := validConfigForValidation(t)
	cfg.FontPath = filepath.Join(t.TempDir(), "missing.ttf")

	result := RunStartupValidation(cfg, nil)

	if result.Success {
		t.Fatal("expected failure for missing explicit font path")
	}
	if result.Steps[1].Status != StepFailed {
		t.Errorf("font step should fail, got %+v", result.Steps[1])
	}
}

func TestRunStartupValidation_ConfiguredFontAndHookPass(t *testing.T) {
	cfg := validConfigForValidation(t)

	fontFile := filepath.Join(t.TempDir(), "face.ttf")
	if err := os.WriteFile(fontFile, []byte("not a real font, stat only"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.FontPath = fontFile
	cfg.ShareHookURL = "https://hooks.example.com/share"

	result := RunStartupValidation(cfg, nil)

	if !result.Success {
		t.Fatalf("expected success, steps: %+v", result.Steps)
	}
	if result.Steps[1].Status != StepPassed {
		t.Errorf("font step should pass, got %+v", result.Steps[1])
	}
	if result.Steps[2].Status != StepPassed {
		t.Errorf("share hook step should pass, got %+v", result.Steps[2])
	}
}

func TestRunStartupValidation_UnwritableOutputDirFails(t *testing.T) {
	cfg := validConfigForValidation(t)
	// A path under an existing regular file cannot be created as a directory.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.OutputDir = filepath.Join(blocker, "out")

	result := RunStartupValidation(cfg, nil)

	if result.Success {
		t.Fatal("expected failure for uncreatable output directory")
	}
	if result.Steps[0].Status != StepFailed {
		t.Errorf("output dir step should fail, got %+v", result.Steps[0])
	}
}
