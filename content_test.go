package brandkit

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func testAssembler() *assembler {
	return newAssembler(rand.New(rand.NewSource(1)))
}

func TestAssemble_HeroDefaults(t *testing.T) {
	brand := BrandRecord{
		Name:        "Acme",
		Tagline:     "Ship faster",
		Description: "Acme builds shipping tools.",
	}

	doc, err := testAssembler().Assemble(brand, CampaignParameters{}, "onepager")
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	if doc.Hero.Title != "Acme" {
		t.Errorf("Hero.Title = %q, want %q", doc.Hero.Title, "Acme")
	}
	if doc.Hero.Subtitle != "Ship faster" {
		t.Errorf("Hero.Subtitle = %q, want %q", doc.Hero.Subtitle, "Ship faster")
	}
	if doc.Hero.Description != "Acme builds shipping tools." {
		t.Errorf("Hero.Description = %q, want brand description", doc.Hero.Description)
	}
	if doc.CallToAction != "Get Started" {
		t.Errorf("CallToAction = %q, want default %q", doc.CallToAction, "Get Started")
	}
}

func TestAssemble_CampaignOverridesHero(t *testing.T) {
	brand := BrandRecord{Name: "Acme"}
	campaign := CampaignParameters{
		What:         "Spring launch",
		Why:          "Because deadlines slip",
		Who:          "small teams",
		CallToAction: "Try it free",
	}

	doc, err := testAssembler().Assemble(brand, campaign, "onepager")
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	if !strings.Contains(doc.Hero.Title, "Spring launch") {
		t.Errorf("Hero.Title = %q, want it to contain %q", doc.Hero.Title, "Spring launch")
	}
	if doc.Hero.Description != "Because deadlines slip" {
		t.Errorf("Hero.Description = %q, want campaign why", doc.Hero.Description)
	}
	if !strings.Contains(doc.Hero.Audience, "small teams") {
		t.Errorf("Hero.Audience = %q, want it to contain %q", doc.Hero.Audience, "small teams")
	}
	if doc.CallToAction != "Try it free" {
		t.Errorf("CallToAction = %q, want %q", doc.CallToAction, "Try it free")
	}
}

func TestAssemble_SeedPinsVariant(t *testing.T) {
	brand := BrandRecord{Name: "Acme"}
	campaign := CampaignParameters{What: "Spring launch"}

	first, err := newAssembler(rand.New(rand.NewSource(42))).Assemble(brand, campaign, "onepager")
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}
	second, err := newAssembler(rand.New(rand.NewSource(42))).Assemble(brand, campaign, "onepager")
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	if first.Hero.Title != second.Hero.Title {
		t.Errorf("same seed produced different titles: %q vs %q", first.Hero.Title, second.Hero.Title)
	}
}

func TestBuildFeatures_DenylistAndCap(t *testing.T) {
	brand := BrandRecord{
		Name: "Acme",
		Keywords: []string{
			"Menu", "Search", "Contact Us", "Login",
			"Analytics", "Automation", "Security", "Collaboration",
			"Integrations", "Reporting", "Dashboards", "Alerts",
			"Exports", "Webhooks",
		},
	}

	s, ok := testAssembler().buildFeatures(brand)
	if !ok {
		t.Fatal("buildFeatures() returned no section")
	}

	if len(s.Features) != maxFeatures {
		t.Errorf("len(Features) = %d, want cap %d", len(s.Features), maxFeatures)
	}
	for _, f := range s.Features {
		if genericNavTerms[strings.ToLower(f.Name)] {
			t.Errorf("denylisted keyword %q became a feature", f.Name)
		}
	}
	if s.Features[0].Name != "Analytics" {
		t.Errorf("Features[0] = %q, want first non-generic keyword %q", s.Features[0].Name, "Analytics")
	}
}

func TestBuildFeatures_DeduplicatesKeywords(t *testing.T) {
	brand := BrandRecord{Keywords: []string{"Analytics", "analytics", "ANALYTICS"}}

	s, ok := testAssembler().buildFeatures(brand)
	if !ok {
		t.Fatal("buildFeatures() returned no section")
	}
	if len(s.Features) != 1 {
		t.Errorf("len(Features) = %d, want 1 after dedup", len(s.Features))
	}
}

func TestBuildFeatures_AllGenericKeywords(t *testing.T) {
	brand := BrandRecord{Keywords: []string{"menu", "search", "login"}}

	if _, ok := testAssembler().buildFeatures(brand); ok {
		t.Error("buildFeatures() emitted a section from generic keywords only")
	}
}

func TestAssemble_ConditionalSections(t *testing.T) {
	tests := []struct {
		name     string
		brand    BrandRecord
		campaign CampaignParameters
		kind     SectionKind
		want     bool
	}{
		{
			name:  "testimonials absent without quotes",
			brand: BrandRecord{Name: "Acme"},
			kind:  SectionTestimonials,
			want:  false,
		},
		{
			name: "testimonials present with quotes",
			brand: BrandRecord{
				Name:         "Acme",
				Testimonials: []Testimonial{{Quote: "Great", Author: "Sam"}},
			},
			kind: SectionTestimonials,
			want: true,
		},
		{
			name:  "social proof absent without entries",
			brand: BrandRecord{Name: "Acme"},
			kind:  SectionSocialProof,
			want:  false,
		},
		{
			name:     "process requires campaign what",
			brand:    BrandRecord{Name: "Acme"},
			campaign: CampaignParameters{},
			kind:     SectionProcess,
			want:     false,
		},
		{
			name:     "process present with campaign what",
			brand:    BrandRecord{Name: "Acme"},
			campaign: CampaignParameters{What: "the launch"},
			kind:     SectionProcess,
			want:     true,
		},
		{
			name:  "about requires description",
			brand: BrandRecord{Name: "Acme"},
			kind:  SectionAbout,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := testAssembler().Assemble(tt.brand, tt.campaign, "onepager")
			if err != nil {
				t.Fatalf("Assemble() unexpected error: %v", err)
			}
			if got := doc.HasSection(tt.kind); got != tt.want {
				t.Errorf("HasSection(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestAssemble_ImageSlotsIndependentOfSections(t *testing.T) {
	// A brand with no testimonials still declares testimonial image slots;
	// slots come from the template, not from section presence.
	brand := BrandRecord{Name: "Acme"}

	doc, err := testAssembler().Assemble(brand, CampaignParameters{}, "onepager")
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	if doc.HasSection(SectionTestimonials) {
		t.Fatal("unexpected testimonials section")
	}
	if got := doc.ImageSlots[RoleTestimonials]; got != 2 {
		t.Errorf("ImageSlots[testimonials] = %d, want 2", got)
	}
}

func TestContentDocumentValidate_UnknownKind(t *testing.T) {
	doc := &ContentDocument{
		Sections: []Section{{ID: "x", Kind: SectionKind("banner")}},
	}

	err := doc.Validate()
	if !errors.Is(err, ErrUnknownSectionKind) {
		t.Errorf("Validate() error = %v, want %v", err, ErrUnknownSectionKind)
	}
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"Advanced Analytics", "📊"},
		{"security first", "🔒"},
		{"AI Design", "🤖"}, // matches two fragments; first in sorted order wins
		{"Something Else", defaultIcon},
	}

	for _, tt := range tests {
		if got := iconFor(tt.keyword); got != tt.want {
			t.Errorf("iconFor(%q) = %q, want %q", tt.keyword, got, tt.want)
		}
	}
}

func TestIconFor_StableAcrossCalls(t *testing.T) {
	for _, keyword := range []string{"AI Design", "secure data", "fast growth"} {
		first := iconFor(keyword)
		for i := 0; i < 20; i++ {
			if got := iconFor(keyword); got != first {
				t.Fatalf("iconFor(%q) = %q on call %d, first call gave %q", keyword, got, i+2, first)
			}
		}
	}
}
