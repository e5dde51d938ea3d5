package main

// Notes:
// - exitCodeFor: we test all sentinel errors from brandkit and config packages,
//   plus wrapped errors to verify errors.Is() chain works correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	brandkit "github.com/kferr/go-brandkit"
	"github.com/kferr/go-brandkit/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", brandkit.ErrBrowserConnect, ExitBrowser},
		{"page create", brandkit.ErrPageCreate, ExitBrowser},
		{"page load", brandkit.ErrPageLoad, ExitBrowser},
		{"capture", brandkit.ErrCapture, ExitBrowser},
		{"render timeout", brandkit.ErrRenderTimeout, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", brandkit.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read brand", ErrReadBrand, ExitIO},
		{"write artifact", ErrWriteArtifact, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"empty brand", brandkit.ErrEmptyBrand, ExitUsage},
		{"invalid format", brandkit.ErrInvalidFormat, ExitUsage},
		{"invalid scale", brandkit.ErrInvalidScale, ExitUsage},
		{"invalid dimensions", brandkit.ErrInvalidDimensions, ExitUsage},
		{"template not found", brandkit.ErrTemplateNotFound, ExitUsage},
		{"invalid component export", brandkit.ErrInvalidComponentExport, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"invalid remote url", ErrInvalidRemoteURL, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	for name, code := range map[string]int{
		"ExitIO":      ExitIO,
		"ExitBrowser": ExitBrowser,
	} {
		if code <= 2 || code >= 126 {
			t.Errorf("%s = %d, want custom code in (2, 126)", name, code)
		}
	}
}
