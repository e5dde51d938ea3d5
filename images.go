package brandkit

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ImageRole is a semantic image slot in a content template.
type ImageRole string

// Image role constants.
const (
	RoleHero         ImageRole = "hero"
	RoleFeatures     ImageRole = "features"
	RoleProcess      ImageRole = "process"
	RoleTestimonials ImageRole = "testimonials"
)

// imageRoles lists all roles in partition order: the first extracted image
// goes to the hero, the next N to features, then process, then testimonials.
var imageRoles = []ImageRole{RoleHero, RoleFeatures, RoleProcess, RoleTestimonials}

// ResolvedImageSet maps each role to an ordered list of image references.
// Lengths always match the declared ImageSlots exactly.
type ResolvedImageSet map[ImageRole][]string

// templateImageSlots declares per-template required image counts.
var templateImageSlots = map[string]map[ImageRole]int{
	"onepager": {RoleHero: 1, RoleFeatures: 6, RoleProcess: 3, RoleTestimonials: 2},
	"story":    {RoleHero: 1, RoleFeatures: 4, RoleProcess: 3, RoleTestimonials: 1},
	"linkedin": {RoleHero: 1, RoleFeatures: 3, RoleProcess: 0, RoleTestimonials: 1},
}

// imageSlotsFor returns the declared slots for a template, defaulting to
// the onepager layout for unknown names.
func imageSlotsFor(template string) map[ImageRole]int {
	slots, ok := templateImageSlots[template]
	if !ok {
		slots = templateImageSlots["onepager"]
	}
	out := make(map[ImageRole]int, len(slots))
	for role, n := range slots {
		out[role] = n
	}
	return out
}

// imageProvider attempts to produce image references for one role.
// Returning fewer than n references (or an error) is not a failure of the
// chain; the resolver moves on or pads from the curated fallback.
type imageProvider interface {
	// attempt returns up to n image references for the role.
	attempt(ctx context.Context, role ImageRole, n int) ([]string, error)

	// allowPartial reports whether a short result may be padded from the
	// fallback set instead of being discarded.
	allowPartial() bool
}

// Compile-time interface checks.
var (
	_ imageProvider = (*generatedImageProvider)(nil)
	_ imageProvider = (*extractedImageProvider)(nil)
	_ imageProvider = (*stockImageProvider)(nil)
)

// generatedImageProvider serves images produced by an upstream AI image
// step and attached to the brand context. Used as-is only when the count
// is sufficient; a short set falls through to the next provider.
type generatedImageProvider struct {
	images map[string][]string
}

func (p *generatedImageProvider) attempt(_ context.Context, role ImageRole, n int) ([]string, error) {
	refs := p.images[string(role)]
	if len(refs) > n {
		refs = refs[:n]
	}
	return refs, nil
}

func (p *generatedImageProvider) allowPartial() bool { return false }

// liveGeneratedProvider produces imagery on demand through an imageGenerator
// when the brand context carries none. Generation errors mean "produced
// nothing" and the chain moves on.
type liveGeneratedProvider struct {
	gen   imageGenerator
	brand BrandRecord
}

func (p *liveGeneratedProvider) attempt(ctx context.Context, role ImageRole, n int) ([]string, error) {
	return p.gen.GenerateImages(ctx, p.brand, role, n)
}

func (p *liveGeneratedProvider) allowPartial() bool { return false }

// extractedImageProvider partitions the images extracted during brand
// ingestion by position: first image to hero, then features, process, and
// testimonials, using the declared slot counts as offsets. Surplus in one
// role is never redistributed to another.
type extractedImageProvider struct {
	images []string
	slots  map[ImageRole]int
}

func (p *extractedImageProvider) attempt(_ context.Context, role ImageRole, n int) ([]string, error) {
	offset := 0
	for _, r := range imageRoles {
		if r == role {
			break
		}
		offset += p.slots[r]
	}
	if offset >= len(p.images) {
		return nil, nil
	}
	end := offset + n
	if end > len(p.images) {
		end = len(p.images)
	}
	return p.images[offset:end], nil
}

func (p *extractedImageProvider) allowPartial() bool { return true }

// Curated stock fallback set, keyed by role. Selection is deterministic:
// slots are filled in catalog order, cycling when a role needs more than
// the catalog holds.
var stockCatalog = map[ImageRole][]string{
	RoleHero: {
		"https://images.unsplash.com/photo-1557804506-669a67965ba0?w=1600&q=80",
		"https://images.unsplash.com/photo-1497366216548-37526070297c?w=1600&q=80",
	},
	RoleFeatures: {
		"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&q=80",
		"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&q=80",
		"https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&q=80",
		"https://images.unsplash.com/photo-1521737604893-d14cc237f11d?w=800&q=80",
		"https://images.unsplash.com/photo-1553877522-43269d4ea984?w=800&q=80",
		"https://images.unsplash.com/photo-1522202176988-66273c2fd55f?w=800&q=80",
	},
	RoleProcess: {
		"https://images.unsplash.com/photo-1454165804606-c3d57bc86b40?w=800&q=80",
		"https://images.unsplash.com/photo-1531403009284-440f080d1e12?w=800&q=80",
		"https://images.unsplash.com/photo-1552664730-d307ca884978?w=800&q=80",
	},
	RoleTestimonials: {
		"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=600&q=80",
		"https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=600&q=80",
	},
}

// stockImageProvider is the terminal fallback. It always fills the
// requested count, so the resolution chain never fails.
type stockImageProvider struct{}

func (p *stockImageProvider) attempt(_ context.Context, role ImageRole, n int) ([]string, error) {
	catalog := stockCatalog[role]
	if len(catalog) == 0 {
		catalog = stockCatalog[RoleFeatures]
	}
	refs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, catalog[i%len(catalog)])
	}
	return refs, nil
}

func (p *stockImageProvider) allowPartial() bool { return false }

// imageFanOutLimit caps concurrent role resolutions to stay under provider
// rate limits.
const imageFanOutLimit = 4

// imageResolver walks the ordered provider chain for each role.
type imageResolver struct {
	providers []imageProvider
	stock     *stockImageProvider
}

// newImageResolver builds the per-render chain:
// generated context -> on-demand generation -> extracted partition ->
// curated stock. gen may be nil.
func newImageResolver(brand BrandRecord, slots map[ImageRole]int, gen imageGenerator) *imageResolver {
	stock := &stockImageProvider{}
	providers := []imageProvider{
		&generatedImageProvider{images: brand.GeneratedImages},
	}
	if gen != nil {
		providers = append(providers, &liveGeneratedProvider{gen: gen, brand: brand})
	}
	providers = append(providers,
		&extractedImageProvider{images: brand.Images, slots: slots},
		stock,
	)
	return &imageResolver{providers: providers, stock: stock}
}

// Resolve fills every declared slot. Each role resolves independently with
// bounded fan-out; provider errors are swallowed and treated as "produced
// nothing". The returned set always matches slots exactly.
func (r *imageResolver) Resolve(ctx context.Context, slots map[ImageRole]int) ResolvedImageSet {
	set := make(ResolvedImageSet, len(slots))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(imageFanOutLimit)

	for _, role := range imageRoles {
		need, ok := slots[role]
		if !ok || need == 0 {
			continue
		}
		g.Go(func() error {
			refs := r.resolveRole(ctx, role, need)
			mu.Lock()
			set[role] = refs
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()
	return set
}

// resolveRole walks the chain for one role: first provider with a
// sufficient result wins; a partial-capable provider's short result is
// padded from stock.
func (r *imageResolver) resolveRole(ctx context.Context, role ImageRole, need int) []string {
	for _, p := range r.providers {
		refs, err := p.attempt(ctx, role, need)
		if err != nil {
			continue
		}
		if len(refs) >= need {
			return refs[:need]
		}
		if p.allowPartial() && len(refs) > 0 {
			pad, _ := r.stock.attempt(ctx, role, need-len(refs))
			return append(refs[:len(refs):len(refs)], pad...)
		}
	}
	// Unreachable in practice: stock always fills.
	refs, _ := r.stock.attempt(ctx, role, need)
	return refs
}
