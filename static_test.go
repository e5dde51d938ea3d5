package brandkit

import (
	"errors"
	"strings"
	"testing"
)

func renderStatic(t *testing.T, brand BrandRecord, campaign CampaignParameters, template string) string {
	t.Helper()

	doc, err := testAssembler().Assemble(brand, campaign, template)
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}
	slots := doc.ImageSlots
	images := newImageResolver(brand, slots, nil).Resolve(t.Context(), slots)

	markup, err := newStaticRenderer().Render(template, ComponentProps{
		Brand:    brand,
		Campaign: campaign,
		Content:  doc,
		Images:   images,
		Tokens:   buildTokens(brand),
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	return markup
}

func TestStaticRenderer_HasTemplate(t *testing.T) {
	r := newStaticRenderer()

	for _, name := range []string{"onepager", "story", "linkedin"} {
		if !r.HasTemplate(name) {
			t.Errorf("HasTemplate(%q) = false, want true", name)
		}
	}
	if r.HasTemplate("poster") {
		t.Error("HasTemplate(poster) = true, want false")
	}
}

func TestStaticRenderer_UnknownTemplate(t *testing.T) {
	r := newStaticRenderer()

	_, err := r.Render("poster", ComponentProps{Content: &ContentDocument{}})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Render() error = %v, want %v", err, ErrTemplateNotFound)
	}
}

func TestStaticRenderer_Onepager(t *testing.T) {
	brand := BrandRecord{
		Name:     "Acme",
		Tagline:  "Ship faster",
		Keywords: []string{"Analytics", "Automation"},
		Colors:   Colors{Primary: "#112233"},
	}
	campaign := CampaignParameters{Who: "small teams"}

	markup := renderStatic(t, brand, campaign, "onepager")

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Acme",
		"Ship faster",
		"small teams",
		"--color-primary: #112233;",
		"Analytics",
		"Get Started",
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q", want)
		}
	}
}

func TestStaticRenderer_NotesRenderedAsMarkdown(t *testing.T) {
	brand := BrandRecord{Name: "Acme"}
	campaign := CampaignParameters{Notes: "Launch includes **priority support**."}

	markup := renderStatic(t, brand, campaign, "onepager")

	if !strings.Contains(markup, "<strong>priority support</strong>") {
		t.Errorf("notes markdown not rendered:\n%s", markup)
	}
}

func TestStaticRenderer_EscapesBrandContent(t *testing.T) {
	brand := BrandRecord{Name: `<script>alert("x")</script>`}

	markup := renderStatic(t, brand, CampaignParameters{}, "onepager")

	if strings.Contains(markup, `<script>alert`) {
		t.Error("brand name was not escaped")
	}
}

func TestStaticRenderer_EverySlotHasAnImage(t *testing.T) {
	brand := BrandRecord{Name: "Acme", Keywords: []string{"Analytics"}}

	markup := renderStatic(t, brand, CampaignParameters{What: "the launch"}, "onepager")

	if !strings.Contains(markup, "images.unsplash.com") {
		t.Error("expected stock imagery in markup for a brand with no images")
	}
}
