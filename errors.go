package brandkit

import "errors"

// Sentinel errors for library operations.
var (
	// Structural failures: abort the render, surfaced to the caller.
	ErrTemplateNotFound       = errors.New("no engine can serve the requested template")
	ErrInvalidComponentExport = errors.New("component artifact has no invocable default export")

	// Rasterization failures. ErrRenderTimeout is retryable by the caller;
	// the pipeline itself never retries.
	ErrRenderTimeout  = errors.New("rasterization timed out")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrCapture        = errors.New("capture failed")

	// Request validation errors.
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidScale      = errors.New("invalid device scale factor")
	ErrInvalidDimensions = errors.New("invalid output dimensions")
	ErrEmptyBrand        = errors.New("brand record must have a name")

	// Content document validation errors.
	ErrUnknownSectionKind = errors.New("unknown section kind")

	// Component artifact descriptor errors.
	ErrArtifactParse = errors.New("failed to parse component artifact descriptor")
)

// errRemoteUnavailable is internal: a transient remote-engine failure is
// recoverable, the orchestrator falls back to static markup.
var errRemoteUnavailable = errors.New("remote generation engine unavailable")
