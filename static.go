package brandkit

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/kferr/go-brandkit/internal/assets"
)

// staticData is the execution context for a static template.
type staticData struct {
	Brand     BrandRecord
	Campaign  CampaignParameters
	Content   *ContentDocument
	Images    ResolvedImageSet
	TokensCSS template.CSS
	BaseCSS   template.CSS
	NotesHTML template.HTML
}

// Img returns the i-th resolved image for a role, or "" when the slot is
// not filled. Templates guard with {{with}}.
func (d staticData) Img(role string, i int) string {
	refs := d.Images[ImageRole(role)]
	if i < 0 || i >= len(refs) {
		return ""
	}
	return refs[i]
}

// staticRenderer is the least-capable engine: embedded html/template
// documents fed with the assembled content. It needs no browser and no
// component artifacts.
type staticRenderer struct {
	templates map[string]*template.Template
	baseCSS   string
	md        *markdownRenderer
}

// newStaticRenderer parses all embedded templates once.
// Panics on a malformed embedded template (programmer error, caught by any
// test that constructs a Service).
func newStaticRenderer() *staticRenderer {
	r := &staticRenderer{
		templates: make(map[string]*template.Template),
		md:        newMarkdownRenderer(),
	}

	css, err := assets.LoadStyle("base")
	if err != nil {
		panic("brandkit: embedded base style missing: " + err.Error())
	}
	r.baseCSS = css

	for _, name := range assets.TemplateNames() {
		raw, err := assets.LoadTemplate(name)
		if err != nil {
			panic("brandkit: embedded template missing: " + err.Error())
		}
		r.templates[name] = template.Must(template.New(name).Parse(raw))
	}
	return r
}

// HasTemplate reports whether a static template exists for the name.
func (r *staticRenderer) HasTemplate(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render executes the named template against the assembled content.
// Campaign notes are rendered from markdown into the notes aside.
func (r *staticRenderer) Render(name string, props ComponentProps) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	data := staticData{
		Brand:     props.Brand,
		Campaign:  props.Campaign,
		Content:   props.Content,
		Images:    props.Images,
		TokensCSS: template.CSS(props.Tokens.CSSVariables()),
		BaseCSS:   template.CSS(r.baseCSS),
	}
	if notes := strings.TrimSpace(props.Campaign.Notes); notes != "" {
		fragment, err := r.md.Fragment(notes)
		if err == nil {
			data.NotesHTML = template.HTML(fragment)
		}
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("executing static template %q: %w", name, err)
	}
	return sb.String(), nil
}
