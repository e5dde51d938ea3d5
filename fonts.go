package brandkit

import (
	"fmt"
	"regexp"
	"strings"
)

// fontNormalizer rewrites font-family declarations in generated markup so
// generic and system fallback fonts become the brand's detected heading and
// body fonts. It is a pure text transform and idempotent: normalizing
// already-normalized markup is a no-op.
type fontNormalizer struct {
	heading string
	body    string
}

// newFontNormalizer creates a normalizer for the brand's font selection.
func newFontNormalizer(heading, body string) *fontNormalizer {
	if heading == "" {
		heading = "Inter"
	}
	if body == "" {
		body = heading
	}
	return &fontNormalizer{heading: heading, body: body}
}

var (
	styleBlockRe  = regexp.MustCompile(`(?is)(<style[^>]*>)(.*?)(</style>)`)
	inlineStyleRe = regexp.MustCompile(`(?i)style="([^"]*)"`)

	// The leading group keeps custom properties like --font-family out of
	// the rewrite.
	fontDeclRe = regexp.MustCompile(`(?i)(^|[^-\w])(font-family\s*:\s*)([^;}]+)`)

	googleFontsLinkRe = regexp.MustCompile(`(?i)<link[^>]*fonts\.googleapis\.com[^>]*/?>`)
)

// systemFonts are default stacks that ingestion or template scaffolding
// leaves behind; they get replaced by the brand's body font.
var systemFonts = map[string]bool{
	"inter": true, "arial": true, "helvetica": true, "helvetica neue": true,
	"segoe ui": true, "roboto": true, "system-ui": true, "-apple-system": true,
	"verdana": true, "tahoma": true, "trebuchet ms": true, "sans-serif": true,
}

// serifFonts map to the brand's heading font instead.
var serifFonts = map[string]bool{
	"serif": true, "georgia": true, "times": true, "times new roman": true,
}

// Normalize rewrites font-family declarations in <style> blocks and inline
// style attributes, collapses duplicated fallback chains to the canonical
// `"<Font>", sans-serif` form, and points the web-font stylesheet link at
// the fonts actually in use. Markup without matching declarations passes
// through unchanged; that is a valid outcome, not an error.
func (n *fontNormalizer) Normalize(markup string) string {
	out := styleBlockRe.ReplaceAllStringFunc(markup, func(block string) string {
		m := styleBlockRe.FindStringSubmatch(block)
		return m[1] + n.rewriteDeclarations(m[2]) + m[3]
	})

	out = inlineStyleRe.ReplaceAllStringFunc(out, func(attr string) string {
		m := inlineStyleRe.FindStringSubmatch(attr)
		return `style="` + n.rewriteDeclarations(m[1]) + `"`
	})

	return n.rewriteFontLink(out)
}

// rewriteDeclarations rewrites every font-family declaration in a CSS text.
func (n *fontNormalizer) rewriteDeclarations(css string) string {
	return fontDeclRe.ReplaceAllStringFunc(css, func(decl string) string {
		m := fontDeclRe.FindStringSubmatch(decl)
		return m[1] + m[2] + n.canonicalValue(m[3])
	})
}

// canonicalValue maps one font-family value to its canonical form.
// Unknown custom fonts (icon fonts, monospace stacks) pass through
// untouched so the rewrite never breaks intentional typography.
func (n *fontNormalizer) canonicalValue(raw string) string {
	val := strings.TrimSpace(raw)

	// Token-driven declarations already carry the brand fonts.
	if strings.HasPrefix(val, "var(") {
		return raw
	}

	important := ""
	if idx := strings.Index(strings.ToLower(val), "!important"); idx != -1 {
		important = " !important"
		val = strings.TrimSpace(val[:idx])
	}

	first := firstFontName(val)
	if first == "" {
		return raw
	}
	lower := strings.ToLower(first)

	switch {
	case strings.EqualFold(first, n.heading):
		return canonicalChain(n.heading) + important
	case strings.EqualFold(first, n.body):
		return canonicalChain(n.body) + important
	case serifFonts[lower]:
		return canonicalChain(n.heading) + important
	case systemFonts[lower]:
		return canonicalChain(n.body) + important
	default:
		return raw
	}
}

// firstFontName returns the first non-empty font in a composite value,
// unquoted.
func firstFontName(val string) string {
	for _, part := range strings.Split(val, ",") {
		name := strings.Trim(strings.TrimSpace(part), `"'`)
		if name != "" {
			return name
		}
	}
	return ""
}

// canonicalChain is the collapsed form every rewritten declaration gets.
func canonicalChain(font string) string {
	return fmt.Sprintf("%q, sans-serif", font)
}

// rewriteFontLink replaces any Google Fonts stylesheet link with one for
// the fonts in use, inserting one into <head> when none exists.
func (n *fontNormalizer) rewriteFontLink(markup string) string {
	link := n.fontLink()
	if googleFontsLinkRe.MatchString(markup) {
		replaced := false
		return googleFontsLinkRe.ReplaceAllStringFunc(markup, func(string) string {
			if replaced {
				return ""
			}
			replaced = true
			return link
		})
	}
	if idx := strings.Index(strings.ToLower(markup), "</head>"); idx != -1 {
		return markup[:idx] + link + "\n" + markup[idx:]
	}
	return markup
}

// fontLink builds the web-font stylesheet reference for the heading and
// body fonts, collapsed when they match.
func (n *fontNormalizer) fontLink() string {
	families := []string{n.heading}
	if !strings.EqualFold(n.body, n.heading) {
		families = append(families, n.body)
	}
	params := make([]string, len(families))
	for i, f := range families {
		params[i] = "family=" + strings.ReplaceAll(f, " ", "+") + ":wght@400;600;700"
	}
	return fmt.Sprintf(`<link href="https://fonts.googleapis.com/css2?%s&display=swap" rel="stylesheet"/>`,
		strings.Join(params, "&"))
}
