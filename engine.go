package brandkit

import "fmt"

// Engine identifies a rendering strategy.
type Engine string

// Engine constants, in preference order: rich data-driven rendering over
// remote generation (cost, latency) over the least-capable static fallback.
const (
	EngineRemote       Engine = "remote"
	EngineComponentSSR Engine = "component-ssr"
	EngineStaticMarkup Engine = "static-markup"
)

// engineCandidate is one strategy in the ordered resolution chain.
type engineCandidate interface {
	attempt(req RenderRequest) (Engine, bool)
}

// forcedStaticCandidate honors an explicit static-markup override, which
// wins over everything else.
type forcedStaticCandidate struct{}

func (forcedStaticCandidate) attempt(req RenderRequest) (Engine, bool) {
	return EngineStaticMarkup, req.ForceStatic
}

// componentCandidate selects component-ssr when an artifact exists for the
// active template slot. The artifact is only located here; it is validated
// when loaded.
type componentCandidate struct {
	renderer *componentRenderer
}

func (c componentCandidate) attempt(req RenderRequest) (Engine, bool) {
	return EngineComponentSSR, c.renderer != nil && c.renderer.HasArtifact(req.Template)
}

// remoteCandidate selects the remote generation engine when a credential
// is configured.
type remoteCandidate struct {
	configured bool
}

func (c remoteCandidate) attempt(RenderRequest) (Engine, bool) {
	return EngineRemote, c.configured
}

// staticCandidate is the fallback when a static template exists for the
// requested name.
type staticCandidate struct {
	renderer *staticRenderer
}

func (c staticCandidate) attempt(req RenderRequest) (Engine, bool) {
	return EngineStaticMarkup, c.renderer != nil && c.renderer.HasTemplate(req.Template)
}

// engineResolver picks exactly one engine for a request.
type engineResolver struct {
	candidates []engineCandidate
}

// newEngineResolver builds the resolution chain in policy order.
func newEngineResolver(component *componentRenderer, static *staticRenderer, remoteConfigured bool) *engineResolver {
	return &engineResolver{
		candidates: []engineCandidate{
			forcedStaticCandidate{},
			componentCandidate{renderer: component},
			remoteCandidate{configured: remoteConfigured},
			staticCandidate{renderer: static},
		},
	}
}

// Resolve returns the first engine whose candidate accepts the request.
// When no engine can serve it, the render fails with ErrTemplateNotFound;
// this is fatal and never retried.
func (r *engineResolver) Resolve(req RenderRequest) (Engine, error) {
	for _, c := range r.candidates {
		if engine, ok := c.attempt(req); ok {
			return engine, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, req.Template)
}
