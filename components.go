package brandkit

import "fmt"

// Built-in component exports. External callers may register their own
// components under any export name; artifacts reference exports by name.
const (
	exportOnepager = "onepager"
	exportStory    = "story"
	exportLinkedIn = "linkedin"
)

// defaultRegistry returns a registry pre-populated with the built-in
// components for each content channel.
func defaultRegistry() *ComponentRegistry {
	r := NewComponentRegistry()
	r.Register(exportOnepager, renderOnepager)
	r.Register(exportStory, renderStory)
	r.Register(exportLinkedIn, renderLinkedIn)
	return r
}

// componentCSS is the layout stylesheet shared by the built-in components.
// All brand-specific values come from the token variables.
const componentCSS = `
* { box-sizing: border-box; margin: 0; }
body { font-family: var(--font-body); color: var(--color-text); background: var(--color-bg); }
h1, h2, h3 { font-family: var(--font-heading); }
main { max-width: var(--max-width); margin: 0 auto; padding: 48px 32px; }
.hero { text-align: center; padding: 64px 0 40px; }
.hero h1 { font-size: 48px; color: var(--color-primary); }
.hero .subtitle { font-size: 22px; margin-top: 12px; }
.hero .audience { display: inline-block; margin-top: 16px; padding: 6px 16px; border-radius: 999px; background: var(--color-muted); }
.hero img { width: 100%; border-radius: var(--radius-md); margin-top: 32px; }
section { margin-top: 56px; }
section h2 { font-size: 28px; margin-bottom: 16px; }
.features { display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px; }
.feature { padding: 20px; border-radius: var(--radius-md); background: var(--color-muted); }
.feature .icon { font-size: 28px; }
.feature img { width: 100%; border-radius: 8px; margin-top: 12px; }
.steps { display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px; }
.step .num { font-size: 14px; font-weight: 700; color: var(--color-accent); }
blockquote { padding: 20px; border-left: 4px solid var(--color-accent); background: var(--color-muted); border-radius: 0 var(--radius-md) var(--radius-md) 0; }
blockquote footer { margin-top: 8px; font-size: 14px; opacity: 0.8; }
.cta { text-align: center; margin-top: 64px; }
.cta a { display: inline-block; padding: 14px 36px; border-radius: 999px; background: var(--color-primary); color: var(--color-bg); text-decoration: none; font-weight: 600; }
`

// documentShell builds the html/head scaffolding around a body.
func documentShell(props ComponentProps, body *Node) *Node {
	head := El("head").With(
		El("meta", Attr{"charset", "utf-8"}),
		El("title").With(Text(props.Brand.Name)),
		El("style").With(RawHTML(props.Tokens.CSSVariables()+componentCSS)),
	)
	return El("html", Attr{"lang", "en"}).With(head, body)
}

// heroBlock renders the hero with its resolved image, when one exists.
func heroBlock(props ComponentProps) *Node {
	h := props.Content.Hero
	hero := El("header", Attr{"class", "hero"}).With(
		El("h1").With(Text(h.Title)),
	)
	if h.Subtitle != "" {
		hero.With(El("p", Attr{"class", "subtitle"}).With(Text(h.Subtitle)))
	}
	if h.Description != "" {
		hero.With(El("p").With(Text(h.Description)))
	}
	if h.Audience != "" {
		hero.With(El("span", Attr{"class", "audience"}).With(Text(h.Audience)))
	}
	if refs := props.Images[RoleHero]; len(refs) > 0 {
		hero.With(El("img", Attr{"src", refs[0]}, Attr{"alt", h.Title}))
	}
	return hero
}

// sectionBlock renders one content section by kind.
func sectionBlock(s Section, props ComponentProps) *Node {
	out := El("section", Attr{"id", s.ID}, Attr{"data-kind", string(s.Kind)}).With(
		El("h2").With(Text(s.Title)),
	)
	if s.Body != "" {
		out.With(El("p").With(Text(s.Body)))
	}

	switch s.Kind {
	case SectionFeatures:
		grid := El("div", Attr{"class", "features"})
		refs := props.Images[RoleFeatures]
		for i, f := range s.Features {
			card := El("div", Attr{"class", "feature"}).With(
				El("span", Attr{"class", "icon"}).With(Text(f.Icon)),
				El("h3").With(Text(f.Name)),
				El("p").With(Text(f.Description)),
			)
			if i < len(refs) {
				card.With(El("img", Attr{"src", refs[i]}, Attr{"alt", f.Name}))
			}
			grid.With(card)
		}
		out.With(grid)

	case SectionProcess:
		grid := El("div", Attr{"class", "steps"})
		refs := props.Images[RoleProcess]
		for i, st := range s.Steps {
			step := El("div", Attr{"class", "step"}).With(
				El("span", Attr{"class", "num"}).With(Text(fmt.Sprintf("Step %d", st.Number))),
				El("h3").With(Text(st.Title)),
				El("p").With(Text(st.Description)),
			)
			if i < len(refs) {
				step.With(El("img", Attr{"src", refs[i]}, Attr{"alt", st.Title}))
			}
			grid.With(step)
		}
		out.With(grid)

	case SectionTestimonials:
		refs := props.Images[RoleTestimonials]
		for i, q := range s.Testimonials {
			quote := El("blockquote").With(Text(q.Quote))
			attribution := q.Author
			if q.Role != "" {
				attribution += ", " + q.Role
			}
			footer := El("footer")
			if i < len(refs) {
				footer.With(El("img", Attr{"src", refs[i]}, Attr{"alt", q.Author}, Attr{"width", "40"}))
			}
			footer.With(Text(attribution))
			quote.With(footer)
			out.With(quote)
		}

	default:
		if len(s.Bullets) > 0 {
			list := El("ul")
			for _, b := range s.Bullets {
				list.With(El("li").With(Text(b)))
			}
			out.With(list)
		}
	}
	return out
}

// ctaBlock renders the closing call to action.
func ctaBlock(props ComponentProps) *Node {
	return El("div", Attr{"class", "cta"}).With(
		El("a", Attr{"href", "#"}).With(Text(props.Content.CallToAction)),
	)
}

// renderOnepager is the full-length single page component.
func renderOnepager(props ComponentProps) *Node {
	main := El("main").With(heroBlock(props))
	for _, s := range props.Content.Sections {
		if s.Kind == SectionHero {
			continue
		}
		main.With(sectionBlock(s, props))
	}
	main.With(ctaBlock(props))
	return documentShell(props, El("body").With(main))
}

// renderStory is the 9:16 vertical variant: hero, a trimmed feature set,
// and the call to action.
func renderStory(props ComponentProps) *Node {
	main := El("main").With(heroBlock(props))
	for _, s := range props.Content.Sections {
		if s.Kind != SectionFeatures && s.Kind != SectionValueProp {
			continue
		}
		main.With(sectionBlock(s, props))
	}
	main.With(ctaBlock(props))
	return documentShell(props, El("body", Attr{"class", "story"}).With(main))
}

// renderLinkedIn is the announcement-style variant: hero, value prop,
// social proof when available.
func renderLinkedIn(props ComponentProps) *Node {
	main := El("main").With(heroBlock(props))
	for _, s := range props.Content.Sections {
		switch s.Kind {
		case SectionValueProp, SectionSocialProof, SectionTestimonials:
			main.With(sectionBlock(s, props))
		}
	}
	main.With(ctaBlock(props))
	return documentShell(props, El("body", Attr{"class", "linkedin"}).With(main))
}
