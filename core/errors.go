package core

import (
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeInvalidPort      = "INVALID_PORT"
	ErrCodeInvalidWorkers   = "INVALID_WORKERS"
	ErrCodeInvalidTimeout   = "INVALID_TIMEOUT"
	ErrCodeInvalidShareHook = "INVALID_SHARE_HOOK"
	ErrCodeFontNotFound     = "FONT_NOT_FOUND"
	ErrCodeOutputDir        = "OUTPUT_DIR_UNAVAILABLE"
)

// ErrInvalidPort returns an error for an out-of-range listen port.
func ErrInvalidPort(port int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidPort,
		Message: fmt.Sprintf("Invalid VIBE_PORT value %d", port),
		Action:  "Set VIBE_PORT to a value between 1 and 65535",
	}
}

// ErrInvalidWorkers returns an error for a non-positive worker count.
func ErrInvalidWorkers(n int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidWorkers,
		Message: fmt.Sprintf("Invalid VIBE_WORKERS value %d", n),
		Action:  "Set VIBE_WORKERS to a positive integer (2 is a good default)",
	}
}

// ErrInvalidTimeout returns an error for a non-positive timeout.
func ErrInvalidTimeout(varName string, d interface{ String() string }) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidTimeout,
		Message: fmt.Sprintf("Invalid %s value %s", varName, d.String()),
		Action:  fmt.Sprintf("Set %s to a positive duration (e.g. 3s)", varName),
	}
}

// ErrInvalidShareHook returns an error for an unusable share hook URL.
func ErrInvalidShareHook(raw string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidShareHook,
		Message: fmt.Sprintf("Invalid VIBE_SHARE_HOOK_URL '%s'", raw),
		Action:  "Set VIBE_SHARE_HOOK_URL to an http(s) URL, or unset it to disable sharing",
	}
}

// ErrFontNotFound returns an error for an explicitly configured font path
// that does not exist.
func ErrFontNotFound(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeFontNotFound,
		Message: fmt.Sprintf("Font file not found: %s", path),
		Action:  "Set VIBE_FONT_PATH to an existing TTF file, or unset it to probe system fonts",
	}
}

// ErrOutputDirUnavailable returns an error when the output directory cannot
// be created or written.
func ErrOutputDirUnavailable(path string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeOutputDir,
		Message: fmt.Sprintf("Output directory unavailable: %s (%s)", path, reason),
		Action:  "Set VIBE_OUTPUT_DIR to a writable directory",
	}
}

// IsConfigError checks if an error is a ConfigError and returns it if so.
func IsConfigError(err error) (*ConfigError, bool) {
	if configErr, ok := err.(*ConfigError); ok {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError.
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
