package main

import (
	"errors"
	"os"

	brandkit "github.com/kferr/go-brandkit"
	"github.com/kferr/go-brandkit/internal/config"
)

// Exit codes for brandkit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, brandkit.ErrBrowserConnect) ||
		errors.Is(err, brandkit.ErrPageCreate) ||
		errors.Is(err, brandkit.ErrPageLoad) ||
		errors.Is(err, brandkit.ErrCapture) ||
		errors.Is(err, brandkit.ErrRenderTimeout) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadBrand) ||
		errors.Is(err, ErrWriteArtifact) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, brandkit.ErrEmptyBrand) ||
		errors.Is(err, brandkit.ErrInvalidFormat) ||
		errors.Is(err, brandkit.ErrInvalidScale) ||
		errors.Is(err, brandkit.ErrInvalidDimensions) ||
		errors.Is(err, brandkit.ErrTemplateNotFound) ||
		errors.Is(err, brandkit.ErrInvalidComponentExport) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidRemoteURL) {
		return ExitUsage
	}

	return ExitGeneral
}
