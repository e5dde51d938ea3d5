package brandkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/kferr/go-brandkit/internal/fileutil"
)

// rasterizer abstracts markup-to-bytes capture to allow different backends.
type rasterizer interface {
	Rasterize(ctx context.Context, markup string, opts *rasterOptions) ([]byte, error)
	Close() error
}

// pageRenderer abstracts capture from a local HTML file to enable testing
// without a browser.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *rasterOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ rasterizer   = (*rodRasterizer)(nil)
	_ pageRenderer = (*rodPageRenderer)(nil)
)

// rasterOptions holds capture parameters. Zero values fall back to the
// package defaults during validation.
type rasterOptions struct {
	Format string
	Width  int
	Height int
	Scale  float64
}

// normalized fills defaults and validates bounds.
func (o *rasterOptions) normalized() (*rasterOptions, error) {
	out := *o
	if out.Width == 0 {
		out.Width = DefaultWidth
	}
	if out.Height == 0 {
		out.Height = DefaultHeight
	}
	if out.Scale == 0 {
		out.Scale = DefaultScale
	}
	if out.Width < 0 || out.Height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, out.Width, out.Height)
	}
	if out.Scale < MinScale || out.Scale > MaxScale {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidScale, out.Scale)
	}
	return &out, nil
}

// CSS pixels per inch for PDF sizing. Chrome prints at 96 DPI.
const cssPixelsPerInch = 96.0

// settleDelay lets web fonts and images paint before capture.
const settleDelay = 150 * time.Millisecond

// rodPageRenderer implements pageRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodPageRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodPageRenderer creates a rodPageRenderer with the given timeout.
func newRodPageRenderer(timeout time.Duration) *rodPageRenderer {
	return &rodPageRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodPageRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodPageRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and captures it
// as PNG or PDF. Returns explicit errors instead of panicking when browser
// operations fail; deadline overruns surface as ErrRenderTimeout.
func (r *rodPageRenderer) RenderFromFile(ctx context.Context, filePath string, opts *rasterOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapTimeout(err)
	}

	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, fmt.Errorf("%w: deadline exceeded", ErrRenderTimeout)
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, classifyLoadError(err)
	}
	time.Sleep(settleDelay)

	if err := ctx.Err(); err != nil {
		return nil, wrapTimeout(err)
	}

	switch opts.Format {
	case FormatPNG:
		return r.capturePNG(page, opts)
	case FormatPDF:
		return r.capturePDF(page, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, opts.Format)
	}
}

// capturePNG sets the viewport to the requested dimensions and device scale
// factor, then screenshots the full page.
func (r *rodPageRenderer) capturePNG(page *rod.Page, opts *rasterOptions) ([]byte, error) {
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: opts.Scale,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrCapture, err)
	}

	buf, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	return buf, nil
}

// capturePDF prints the page to a single sheet matching the requested pixel
// dimensions at 96 DPI, with backgrounds and zero margins.
func (r *rodPageRenderer) capturePDF(page *rod.Page, opts *rasterOptions) ([]byte, error) {
	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(float64(opts.Width) / cssPixelsPerInch),
		PaperHeight:     floatPtr(float64(opts.Height) / cssPixelsPerInch),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	}

	reader, err := page.PDF(pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrCapture, err)
	}
	return buf, nil
}

// wrapTimeout maps context deadline errors onto ErrRenderTimeout so callers
// can match the failure without caring about the browser backend.
func wrapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}
	return err
}

// classifyLoadError maps a page-load failure to ErrRenderTimeout when the
// deadline was exceeded, ErrPageLoad otherwise. The deadline check runs on
// the raw error, before any wrapping.
func classifyLoadError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrPageLoad, err)
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodRasterizer captures rendered markup using headless Chrome via go-rod.
type rodRasterizer struct {
	renderer *rodPageRenderer
}

// newRodRasterizer creates a rodRasterizer with production renderer.
func newRodRasterizer(timeout time.Duration) *rodRasterizer {
	return &rodRasterizer{renderer: newRodPageRenderer(timeout)}
}

// Rasterize writes markup to a temp file and captures it. The browser needs
// a real file URL so relative asset references resolve consistently.
func (c *rodRasterizer) Rasterize(ctx context.Context, markup string, opts *rasterOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(markup, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodRasterizer) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
