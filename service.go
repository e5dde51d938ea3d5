package brandkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kferr/go-brandkit/internal/fileutil"
)

// renderState tracks pipeline progress for one render. Failed is terminal;
// a failed render never writes a partial artifact.
type renderState string

const (
	stateAssembling      renderState = "assembling"
	stateEngineSelected  renderState = "engine-selected"
	stateRendering       renderState = "rendering"
	stateFontNormalizing renderState = "font-normalizing"
	stateRasterizing     renderState = "rasterizing"
	stateDone            renderState = "done"
	stateFailed          renderState = "failed"
)

// Service orchestrates the brand asset rendering pipeline.
type Service struct {
	cfg        serviceConfig
	assembler  contentAssembler
	registry   *ComponentRegistry
	component  *componentRenderer
	static     *staticRenderer
	remote     remoteEngine
	imageGen   imageGenerator
	rasterizer rasterizer
	resolver   *engineResolver
	log        *log.Logger
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithRemoteEngine).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:      serviceConfig{timeout: defaultTimeout},
		registry: defaultRegistry(),
		static:   newStaticRenderer(),
		log:      log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.assembler == nil {
		seed := s.cfg.seed
		if !s.cfg.seeded {
			seed = time.Now().UnixNano()
		}
		s.assembler = newAssembler(rand.New(rand.NewSource(seed)))
	}

	if s.cfg.componentDir != "" {
		s.component = newComponentRenderer(s.registry, s.cfg.componentDir)
	}

	if s.remote == nil && s.cfg.remoteURL != "" && s.cfg.remoteKey != "" {
		s.remote = newRemoteClient(s.cfg.remoteURL, s.cfg.remoteKey, s.cfg.timeout)
	}

	if s.imageGen == nil {
		if gen := newOpenAIImageGenerator(s.cfg.imageAPIKey, s.cfg.imageModel); gen != nil {
			s.imageGen = gen
		}
	}

	// Rasterizer may be injected by tests.
	if s.rasterizer == nil {
		s.rasterizer = newRodRasterizer(s.cfg.timeout)
	}

	s.resolver = newEngineResolver(s.component, s.static, s.remote != nil)

	return s
}

// WithLogger sets the structured logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// Registry exposes the component registry so callers can register custom
// Renderable components before rendering.
func (s *Service) Registry() *ComponentRegistry {
	return s.registry
}

// Render runs the full pipeline for one request and returns the artifact.
// When req.Output is set the artifact and its manifest are written there
// atomically; a failed render leaves no partial file behind.
func (s *Service) Render(ctx context.Context, req RenderRequest) (*RenderArtifact, error) {
	req = req.normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	state := stateAssembling
	logger := s.log.With("brand", req.Brand.Slug, "template", req.Template, "format", req.Format)
	logger.Debug("render started", "state", state)

	// Assemble content and resolve imagery.
	content, err := s.assembler.Assemble(req.Brand, req.Campaign, req.Template)
	if err != nil {
		return nil, s.fail(logger, state, fmt.Errorf("assembling content: %w", err))
	}
	resolver := newImageResolver(req.Brand, content.ImageSlots, s.imageGen)
	images := resolver.Resolve(ctx, content.ImageSlots)

	// Select the engine.
	engine, err := s.resolver.Resolve(req)
	if err != nil {
		return nil, s.fail(logger, state, err)
	}
	state = stateEngineSelected
	logger.Debug("engine selected", "state", state, "engine", engine)

	props := ComponentProps{
		Brand:    req.Brand,
		Campaign: req.Campaign,
		Content:  content,
		Images:   images,
		Tokens:   buildTokens(req.Brand),
	}

	// Render markup.
	state = stateRendering
	markup, engine, err := s.renderMarkup(ctx, engine, req, props)
	if err != nil {
		return nil, s.fail(logger, state, err)
	}

	// Normalize fonts.
	state = stateFontNormalizing
	normalizer := newFontNormalizer(req.Brand.HeadingFont(), req.Brand.BodyFont())
	markup = normalizer.Normalize(markup)

	artifact := &RenderArtifact{
		Format:      req.Format,
		Width:       req.Width,
		Height:      req.Height,
		Scale:       req.Scale,
		Engine:      engine,
		GeneratedAt: time.Now().UTC(),
	}

	if req.Format == FormatHTML {
		artifact.Bytes = []byte(markup)
	} else {
		state = stateRasterizing
		logger.Debug("rasterizing", "state", state, "width", req.Width, "height", req.Height, "scale", req.Scale)
		buf, err := s.rasterizer.Rasterize(ctx, markup, &rasterOptions{
			Format: req.Format,
			Width:  req.Width,
			Height: req.Height,
			Scale:  float64(req.Scale),
		})
		if err != nil {
			return nil, s.fail(logger, state, fmt.Errorf("rasterizing: %w", err))
		}
		artifact.Bytes = buf
	}

	if req.Output != "" {
		if err := s.writeArtifact(req, artifact); err != nil {
			return nil, s.fail(logger, state, err)
		}
	}

	state = stateDone
	logger.Info("render finished", "state", state, "engine", engine, "bytes", len(artifact.Bytes))
	return artifact, nil
}

// renderMarkup invokes the selected engine. A transient remote failure
// falls back to the static engine; the artifact records the engine that
// actually produced the markup.
func (s *Service) renderMarkup(ctx context.Context, engine Engine, req RenderRequest, props ComponentProps) (string, Engine, error) {
	switch engine {
	case EngineComponentSSR:
		markup, err := s.component.Render(req.Template, props)
		if err != nil {
			return "", engine, fmt.Errorf("component render: %w", err)
		}
		return markup, engine, nil

	case EngineRemote:
		markup, err := s.remote.Generate(ctx, req, req.Brand, *props.Content, props.Images)
		if err == nil {
			return markup, engine, nil
		}
		if !errors.Is(err, errRemoteUnavailable) {
			return "", engine, fmt.Errorf("remote render: %w", err)
		}
		s.log.Warn("remote engine unavailable, falling back to static", "err", err)
		if !s.static.HasTemplate(req.Template) {
			return "", engine, fmt.Errorf("%w: %q", ErrTemplateNotFound, req.Template)
		}
		markup, err = s.static.Render(req.Template, props)
		if err != nil {
			return "", engine, fmt.Errorf("static render: %w", err)
		}
		return markup, EngineStaticMarkup, nil

	case EngineStaticMarkup:
		markup, err := s.static.Render(req.Template, props)
		if err != nil {
			return "", engine, fmt.Errorf("static render: %w", err)
		}
		return markup, engine, nil

	default:
		return "", engine, fmt.Errorf("%w: unknown engine %q", ErrTemplateNotFound, engine)
	}
}

// writeArtifact persists the artifact and its manifest atomically.
func (s *Service) writeArtifact(req RenderRequest, artifact *RenderArtifact) error {
	if err := fileutil.WriteFileAtomic(req.Output, artifact.Bytes, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	artifact.Path = req.Output

	manifest := newManifest(req, artifact, s.remotePrompt(artifact.Engine))
	if err := manifest.write(); err != nil {
		return err
	}
	return nil
}

// remotePrompt returns the source prompt of the last remote generation.
// Only remote-engine artifacts carry a prompt; on any other engine the
// client may still hold a prompt from an earlier render on this Service.
func (s *Service) remotePrompt(engine Engine) string {
	if engine != EngineRemote {
		return ""
	}
	if rc, ok := s.remote.(*remoteClient); ok {
		return rc.lastPrompt
	}
	return ""
}

// fail logs the terminal failure and returns the error unchanged.
func (s *Service) fail(logger *log.Logger, from renderState, err error) error {
	logger.Error("render failed", "state", stateFailed, "from", from, "err", err)
	return err
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.rasterizer != nil {
		return s.rasterizer.Close()
	}
	return nil
}
