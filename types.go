package brandkit

import (
	"fmt"
	"strings"
	"time"
)

// Output format constants.
const (
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Device scale factor bounds. Scale multiplies pixel density, not CSS size.
const (
	MinScale     = 1
	MaxScale     = 3
	DefaultScale = 2
)

// Default output dimensions in CSS pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 1600
)

// Colors holds the brand color set. Hex strings, e.g. "#2D5BFF".
type Colors struct {
	Primary    string   `json:"primary" yaml:"primary"`
	Secondary  string   `json:"secondary" yaml:"secondary"`
	Accent     string   `json:"accent" yaml:"accent"`
	Muted      string   `json:"muted" yaml:"muted"`
	Background string   `json:"background" yaml:"background"`
	Text       string   `json:"text" yaml:"text"`
	Palette    []string `json:"palette" yaml:"palette"`
}

// Typography holds the brand font selection.
type Typography struct {
	Heading   string   `json:"heading" yaml:"heading"`
	Body      string   `json:"body" yaml:"body"`
	Fallbacks []string `json:"fallbacks" yaml:"fallbacks"`
	Detected  []string `json:"detected" yaml:"detected"`
}

// BrandRecord is the brand identity supplied by the ingestion subsystem.
// It is read-only input to a render; the pipeline never mutates it.
type BrandRecord struct {
	Slug        string     `json:"slug" yaml:"slug"`
	Name        string     `json:"name" yaml:"name"`
	Tagline     string     `json:"tagline" yaml:"tagline"`
	Description string     `json:"description" yaml:"description"`
	Colors      Colors     `json:"colors" yaml:"colors"`
	Typography  Typography `json:"typography" yaml:"typography"`
	Keywords    []string   `json:"keywords" yaml:"keywords"`
	Tone        string     `json:"tone" yaml:"tone"`

	// Images holds raw image URLs extracted during brand ingestion, in
	// source order.
	Images []string `json:"images" yaml:"images"`

	// GeneratedImages maps an image role to URLs produced by an upstream
	// AI image step, e.g. {"hero": ["https://..."]}.
	GeneratedImages map[string][]string `json:"generatedImages" yaml:"generatedImages"`

	// Testimonials and SocialProof are optional; the corresponding
	// sections are omitted when they are empty.
	Testimonials []Testimonial `json:"testimonials" yaml:"testimonials"`
	SocialProof  []string      `json:"socialProof" yaml:"socialProof"`
}

// HeadingFont returns the heading font with a safe default.
func (b *BrandRecord) HeadingFont() string {
	if b.Typography.Heading != "" {
		return b.Typography.Heading
	}
	if len(b.Typography.Detected) > 0 {
		return b.Typography.Detected[0]
	}
	return "Inter"
}

// BodyFont returns the body font with a safe default.
func (b *BrandRecord) BodyFont() string {
	if b.Typography.Body != "" {
		return b.Typography.Body
	}
	return b.HeadingFont()
}

// CampaignParameters is the request-scoped what/why/who/call-to-action
// tuple. Never persisted by this subsystem.
type CampaignParameters struct {
	What         string `json:"what" yaml:"what"`
	Why          string `json:"why" yaml:"why"`
	Who          string `json:"who" yaml:"who"`
	CallToAction string `json:"callToAction" yaml:"callToAction"`

	// Notes is optional free-form context. Markdown is allowed and is
	// rendered by the static engine.
	Notes string `json:"notes" yaml:"notes"`
}

// RenderRequest describes one render invocation.
type RenderRequest struct {
	Brand    BrandRecord
	Campaign CampaignParameters

	// Template names the content template, e.g. "onepager", "story",
	// "linkedin".
	Template string

	// Format is "html", "png", or "pdf". Defaults to "png".
	Format string

	// Width and Height are output dimensions in CSS pixels. For PDF they
	// determine the page size at 96 DPI. Zero means defaults (1200x1600).
	Width  int
	Height int

	// Scale is the device scale factor for PNG output (1-3, default 2).
	Scale int

	// Output is the destination path. Empty means the artifact is returned
	// in memory only.
	Output string

	// ForceStatic bypasses engine resolution and uses the static-markup
	// engine unconditionally.
	ForceStatic bool
}

// normalized returns a copy of the request with defaults applied.
func (r RenderRequest) normalized() RenderRequest {
	if r.Format == "" {
		r.Format = FormatPNG
	}
	r.Format = strings.ToLower(r.Format)
	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.Scale == 0 {
		r.Scale = DefaultScale
	}
	if r.Template == "" {
		r.Template = "onepager"
	}
	return r
}

// Validate checks the request after defaults have been applied.
func (r RenderRequest) Validate() error {
	if strings.TrimSpace(r.Brand.Name) == "" {
		return ErrEmptyBrand
	}
	switch r.Format {
	case FormatHTML, FormatPNG, FormatPDF:
	default:
		return fmt.Errorf("%w: %q (must be html, png, or pdf)", ErrInvalidFormat, r.Format)
	}
	if r.Scale < MinScale || r.Scale > MaxScale {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidScale, r.Scale, MinScale, MaxScale)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, r.Width, r.Height)
	}
	return nil
}

// RenderArtifact is the terminal output record of a render. It is written
// to the caller-specified destination and not mutated afterward.
type RenderArtifact struct {
	Format      string    `json:"format"`
	Path        string    `json:"path,omitempty"`
	Bytes       []byte    `json:"-"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Scale       int       `json:"scale"`
	Engine      Engine    `json:"engine"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout      time.Duration
	componentDir string
	remoteURL    string
	remoteKey    string
	imageAPIKey  string
	imageModel   string
	seed         int64
	seeded       bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the rasterization timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("brandkit: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithComponentDir sets the directory scanned for component artifacts.
func WithComponentDir(dir string) Option {
	return func(s *Service) {
		s.cfg.componentDir = dir
	}
}

// WithRemoteEngine configures the remote generation engine endpoint and
// credential. An empty key leaves the remote engine unavailable.
func WithRemoteEngine(baseURL, apiKey string) Option {
	return func(s *Service) {
		s.cfg.remoteURL = baseURL
		s.cfg.remoteKey = apiKey
	}
}

// WithImageGeneration enables on-demand imagery through the OpenAI Images
// API for the generated tier of the image chain. An empty model uses the
// SDK default.
func WithImageGeneration(apiKey, model string) Option {
	return func(s *Service) {
		s.cfg.imageAPIKey = apiKey
		s.cfg.imageModel = model
	}
}

// WithSeed pins the pseudo-random source used for copy variant selection.
// Production renders leave the source unseeded for stylistic variety;
// tests pin the seed to assert a specific variant.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.cfg.seed = seed
		s.cfg.seeded = true
	}
}
