package brandkit

import (
	"fmt"
	"maps"
	"math/rand"
	"slices"
	"strings"
)

// SectionKind identifies a content section type. The set is closed;
// unknown kinds are rejected at validation.
type SectionKind string

// Section kind constants.
const (
	SectionHero         SectionKind = "hero"
	SectionValueProp    SectionKind = "value-prop"
	SectionAbout        SectionKind = "about"
	SectionFeatures     SectionKind = "features"
	SectionBenefits     SectionKind = "benefits"
	SectionProcess      SectionKind = "process"
	SectionTestimonials SectionKind = "testimonials"
	SectionSocialProof  SectionKind = "social-proof"
)

// validSectionKinds is the closed set of kinds a ContentDocument may carry.
var validSectionKinds = map[SectionKind]bool{
	SectionHero:         true,
	SectionValueProp:    true,
	SectionAbout:        true,
	SectionFeatures:     true,
	SectionBenefits:     true,
	SectionProcess:      true,
	SectionTestimonials: true,
	SectionSocialProof:  true,
}

// Hero is the lead block of a content document.
type Hero struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Audience    string `json:"audience"`
}

// Feature is one derived capability entry.
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ProcessStep is one numbered step in the process section.
type ProcessStep struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a quote attributed to a customer.
type Testimonial struct {
	Quote  string `json:"quote" yaml:"quote"`
	Author string `json:"author" yaml:"author"`
	Role   string `json:"role" yaml:"role"`
}

// Section is one ordered block of the content document. Exactly the fields
// matching the section kind are populated; the rest stay zero.
type Section struct {
	ID           string        `json:"id"`
	Kind         SectionKind   `json:"kind"`
	Title        string        `json:"title"`
	Body         string        `json:"body,omitempty"`
	Bullets      []string      `json:"bullets,omitempty"`
	Features     []Feature     `json:"features,omitempty"`
	Steps        []ProcessStep `json:"steps,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
}

// ContentDocument is the assembled, render-ready content structure.
// It lives for a single render call.
type ContentDocument struct {
	Hero         Hero              `json:"hero"`
	Sections     []Section         `json:"sections"`
	ImageSlots   map[ImageRole]int `json:"imageSlots"`
	CallToAction string            `json:"callToAction"`
}

// Validate rejects documents carrying a section kind outside the closed set.
func (d *ContentDocument) Validate() error {
	for _, s := range d.Sections {
		if !validSectionKinds[s.Kind] {
			return fmt.Errorf("%w: %q", ErrUnknownSectionKind, s.Kind)
		}
	}
	return nil
}

// HasSection reports whether a section of the given kind is present.
func (d *ContentDocument) HasSection(kind SectionKind) bool {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// maxFeatures caps the feature list derived from brand keywords.
const maxFeatures = 8

// genericNavTerms is the denylist of navigation chrome that leaks into
// brand keywords during ingestion and must never become a feature.
var genericNavTerms = map[string]bool{
	"menu": true, "search": true, "pages": true, "channel": true,
	"home": true, "about": true, "about us": true, "contact": true,
	"contact us": true, "blog": true, "login": true, "log in": true,
	"sign in": true, "sign up": true, "privacy": true, "terms": true,
	"careers": true, "faq": true,
}

// featureIcons maps keyword fragments to a role icon.
var featureIcons = map[string]string{
	"analytics":   "📊",
	"data":        "📊",
	"insight":     "🔍",
	"speed":       "⚡",
	"fast":        "⚡",
	"performance": "⚡",
	"secure":      "🔒",
	"security":    "🔒",
	"privacy":     "🔒",
	"team":        "👥",
	"collab":      "👥",
	"automation":  "🤖",
	"ai":          "🤖",
	"design":      "🎨",
	"brand":       "🎨",
	"growth":      "📈",
	"revenue":     "📈",
	"global":      "🌍",
	"cloud":       "☁️",
	"integr":      "🔗",
	"support":     "💬",
}

// iconFragments holds the featureIcons keys in sorted order so a keyword
// matching several fragments always resolves to the same icon.
var iconFragments = slices.Sorted(maps.Keys(featureIcons))

// defaultIcon is used for keywords with no mapped icon.
const defaultIcon = "✦"

// iconFor selects a role icon for a feature keyword.
func iconFor(keyword string) string {
	k := strings.ToLower(keyword)
	for _, fragment := range iconFragments {
		if strings.Contains(k, fragment) {
			return featureIcons[fragment]
		}
	}
	return defaultIcon
}

// Copy variant templates. One is chosen uniformly at random per render;
// this is intentional stylistic variety. Tests pin the seed via WithSeed.
var (
	heroTitleVariants = []string{
		"%s",
		"Meet %s",
		"Introducing %s",
	}
	heroAudienceVariants = []string{
		"Built for %s",
		"Made for %s",
		"Designed for %s",
	}
	featureDescVariants = []string{
		"%s, built in from day one",
		"%s that works the way you do",
		"%s without the busywork",
	}
)

// assembler combines a brand record and campaign parameters into a
// ContentDocument.
type assembler struct {
	rng *rand.Rand
}

// contentAssembler abstracts content assembly to allow injection in tests.
type contentAssembler interface {
	Assemble(brand BrandRecord, campaign CampaignParameters, template string) (*ContentDocument, error)
}

// Compile-time interface check.
var _ contentAssembler = (*assembler)(nil)

// newAssembler creates an assembler with the given pseudo-random source.
func newAssembler(rng *rand.Rand) *assembler {
	return &assembler{rng: rng}
}

// pick selects one variant uniformly at random.
func (a *assembler) pick(variants []string) string {
	return variants[a.rng.Intn(len(variants))]
}

// Assemble builds the content document. Sections are emitted only when
// their required data is non-empty, so renderers never see empty blocks.
func (a *assembler) Assemble(brand BrandRecord, campaign CampaignParameters, template string) (*ContentDocument, error) {
	doc := &ContentDocument{
		Hero:         a.buildHero(brand, campaign),
		ImageSlots:   imageSlotsFor(template),
		CallToAction: campaign.CallToAction,
	}
	if doc.CallToAction == "" {
		doc.CallToAction = "Get Started"
	}

	doc.Sections = append(doc.Sections, Section{
		ID:    "hero",
		Kind:  SectionHero,
		Title: doc.Hero.Title,
		Body:  doc.Hero.Description,
	})

	if s, ok := a.buildValueProp(brand, campaign); ok {
		doc.Sections = append(doc.Sections, s)
	}
	if s, ok := buildAbout(brand, campaign); ok {
		doc.Sections = append(doc.Sections, s)
	}
	if s, ok := a.buildFeatures(brand); ok {
		doc.Sections = append(doc.Sections, s)
	}
	if s, ok := buildBenefits(brand, campaign); ok {
		doc.Sections = append(doc.Sections, s)
	}
	if s, ok := buildProcess(brand, campaign); ok {
		doc.Sections = append(doc.Sections, s)
	}
	if s, ok := buildTestimonials(brand); ok {
		doc.Sections = append(doc.Sections, s)
	}
	if s, ok := buildSocialProof(brand); ok {
		doc.Sections = append(doc.Sections, s)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// buildHero defaults the hero title and subtitle to the brand name and
// tagline when campaign fields are absent.
func (a *assembler) buildHero(brand BrandRecord, campaign CampaignParameters) Hero {
	h := Hero{
		Title:    brand.Name,
		Subtitle: brand.Tagline,
	}
	if what := strings.TrimSpace(campaign.What); what != "" {
		h.Title = fmt.Sprintf(a.pick(heroTitleVariants), what)
	}
	if why := strings.TrimSpace(campaign.Why); why != "" {
		h.Description = why
	} else {
		h.Description = brand.Description
	}
	if who := strings.TrimSpace(campaign.Who); who != "" {
		h.Audience = fmt.Sprintf(a.pick(heroAudienceVariants), who)
	}
	return h
}

func (a *assembler) buildValueProp(brand BrandRecord, campaign CampaignParameters) (Section, bool) {
	body := strings.TrimSpace(campaign.Why)
	if body == "" {
		body = strings.TrimSpace(brand.Tagline)
	}
	if body == "" {
		return Section{}, false
	}
	title := "Why it matters"
	if campaign.What != "" {
		title = fmt.Sprintf("Why %s", campaign.What)
	}
	return Section{ID: "value-prop", Kind: SectionValueProp, Title: title, Body: body}, true
}

func buildAbout(brand BrandRecord, campaign CampaignParameters) (Section, bool) {
	if strings.TrimSpace(brand.Description) == "" {
		return Section{}, false
	}
	s := Section{
		ID:    "about",
		Kind:  SectionAbout,
		Title: "About " + brand.Name,
		Body:  brand.Description,
	}
	if campaign.Notes != "" {
		s.Bullets = append(s.Bullets, strings.TrimSpace(campaign.Notes))
	}
	return s, true
}

// buildFeatures derives the feature list from brand keywords, skipping
// generic navigation terms, capped at maxFeatures.
func (a *assembler) buildFeatures(brand BrandRecord) (Section, bool) {
	seen := make(map[string]bool)
	var features []Feature
	for _, kw := range brand.Keywords {
		k := strings.TrimSpace(kw)
		if k == "" {
			continue
		}
		lower := strings.ToLower(k)
		if genericNavTerms[lower] || seen[lower] {
			continue
		}
		seen[lower] = true
		features = append(features, Feature{
			Name:        k,
			Description: fmt.Sprintf(a.pick(featureDescVariants), k),
			Icon:        iconFor(k),
		})
		if len(features) == maxFeatures {
			break
		}
	}
	if len(features) == 0 {
		return Section{}, false
	}
	return Section{
		ID:       "features",
		Kind:     SectionFeatures,
		Title:    "What you get",
		Features: features,
	}, true
}

func buildBenefits(brand BrandRecord, campaign CampaignParameters) (Section, bool) {
	var bullets []string
	if campaign.What != "" && campaign.Who != "" {
		bullets = append(bullets, fmt.Sprintf("%s, shaped around %s", campaign.What, campaign.Who))
	}
	if campaign.Why != "" {
		bullets = append(bullets, campaign.Why)
	}
	if brand.Tone != "" {
		bullets = append(bullets, fmt.Sprintf("A %s experience end to end", strings.ToLower(brand.Tone)))
	}
	if len(bullets) == 0 {
		return Section{}, false
	}
	return Section{ID: "benefits", Kind: SectionBenefits, Title: "Key benefits", Bullets: bullets}, true
}

// buildProcess emits a three-step getting-started walkthrough when the
// campaign names what is being offered.
func buildProcess(brand BrandRecord, campaign CampaignParameters) (Section, bool) {
	what := strings.TrimSpace(campaign.What)
	if what == "" {
		return Section{}, false
	}
	steps := []ProcessStep{
		{Number: 1, Title: "Tell us about your goals", Description: fmt.Sprintf("Share what you need from %s.", what)},
		{Number: 2, Title: "We tailor it to you", Description: fmt.Sprintf("%s configures everything around your workflow.", brand.Name)},
		{Number: 3, Title: "Launch and grow", Description: "Go live in minutes and iterate as you learn."},
	}
	return Section{ID: "process", Kind: SectionProcess, Title: "How it works", Steps: steps}, true
}

func buildTestimonials(brand BrandRecord) (Section, bool) {
	if len(brand.Testimonials) == 0 {
		return Section{}, false
	}
	return Section{
		ID:           "testimonials",
		Kind:         SectionTestimonials,
		Title:        "What our customers say",
		Testimonials: brand.Testimonials,
	}, true
}

func buildSocialProof(brand BrandRecord) (Section, bool) {
	if len(brand.SocialProof) == 0 {
		return Section{}, false
	}
	return Section{
		ID:      "social-proof",
		Kind:    SectionSocialProof,
		Title:   "Trusted by teams like yours",
		Bullets: brand.SocialProof,
	}, true
}
