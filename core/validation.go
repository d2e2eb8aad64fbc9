package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// StepStatus represents the outcome of a single startup validation step.
type StepStatus int

const (
	StepPassed StepStatus = iota
	StepWarning
	StepFailed
)

// ValidationStep records one startup check and its outcome.
type ValidationStep struct {
	Name    string
	Status  StepStatus
	Message string
}

// ValidationResult is the aggregate outcome of startup validation.
type ValidationResult struct {
	Steps   []ValidationStep
	Success bool
}

// RunStartupValidation performs fast preflight checks before the service
// starts: output directory writability, font configuration, and share hook
// shape. Progress is printed to out with colored status markers.
//
// Failures here are configuration problems the operator can fix; the
// returned result distinguishes hard failures from warnings (the service
// can run with warnings, e.g. no TTF font found means bitmap-font output).
func RunStartupValidation(cfg *Config, out io.Writer) ValidationResult {
	result := ValidationResult{Success: true}

	add := func(step ValidationStep) {
		result.Steps = append(result.Steps, step)
		printStep(out, step)
		if step.Status == StepFailed {
			result.Success = false
		}
	}

	// Output directory must be creatable and writable.
	add(checkOutputDir(cfg.OutputDir))

	// Font configuration: explicit path must exist; otherwise warn when no
	// system candidate is likely present.
	add(checkFont(cfg.FontPath))

	// Share hook is optional; validated in LoadConfig, reported here.
	if cfg.ShareHookURL == "" {
		add(ValidationStep{
			Name:    "share hook",
			Status:  StepWarning,
			Message: "VIBE_SHARE_HOOK_URL not set; Share() will soft-fail",
		})
	} else {
		add(ValidationStep{
			Name:    "share hook",
			Status:  StepPassed,
			Message: cfg.ShareHookURL,
		})
	}

	return result
}

func checkOutputDir(dir string) ValidationStep {
	step := ValidationStep{Name: "output directory"}

	if err := os.MkdirAll(dir, 0755); err != nil {
		step.Status = StepFailed
		step.Message = ErrOutputDirUnavailable(dir, err.Error()).Error()
		return step
	}

	// Probe writability with a transient file.
	probe := filepath.Join(dir, ".write_probe")
	f, err := os.Create(probe)
	if err != nil {
		step.Status = StepFailed
		step.Message = ErrOutputDirUnavailable(dir, err.Error()).Error()
		return step
	}
	f.Close()
	os.Remove(probe)

	step.Status = StepPassed
	step.Message = dir
	return step
}

func checkFont(fontPath string) ValidationStep {
	step := ValidationStep{Name: "font"}

	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			step.Status = StepFailed
			step.Message = ErrFontNotFound(fontPath).Error()
			return step
		}
		step.Status = StepPassed
		step.Message = fontPath
		return step
	}

	step.Status = StepWarning
	step.Message = "VIBE_FONT_PATH not set; probing system fonts, bitmap fallback possible"
	return step
}

func printStep(out io.Writer, step ValidationStep) {
	if out == nil {
		return
	}
	var marker string
	switch step.Status {
	case StepPassed:
		marker = color.GreenString("✓")
	case StepWarning:
		marker = color.YellowString("!")
	case StepFailed:
		marker = color.RedString("✗")
	}
	fmt.Fprintf(out, "  %s %s: %s\n", marker, step.Name, step.Message)
}
