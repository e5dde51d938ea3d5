package brandkit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DesignTokens is the flattened set of design values derived from a brand
// record, consumed by components and static templates as CSS variables.
type DesignTokens struct {
	FontHeading string
	FontBody    string
	Fallbacks   []string

	Primary    string
	Secondary  string
	Accent     string
	Muted      string
	Background string
	Text       string

	MaxWidth int
	RadiusMd int
}

// Default token values for brands with missing color roles.
const (
	defaultPrimary    = "#2D5BFF"
	defaultSecondary  = "#00C2A8"
	defaultMuted      = "#EBEEF3"
	defaultBackground = "#FFFFFF"
	defaultText       = "#0B0B0B"
	defaultMaxWidth   = 880
	defaultRadius     = 16
)

// defaultFallbacks is the canonical font fallback chain.
var defaultFallbacks = []string{"Inter", "system-ui", "Segoe UI", "Roboto", "Helvetica", "Arial"}

// buildTokens derives design tokens from the brand record, filling missing
// color roles and correcting the text color for WCAG AA contrast against
// the background.
func buildTokens(brand BrandRecord) DesignTokens {
	c := brand.Colors
	t := DesignTokens{
		FontHeading: brand.HeadingFont(),
		FontBody:    brand.BodyFont(),
		Fallbacks:   brand.Typography.Fallbacks,
		Primary:     orDefault(c.Primary, defaultPrimary),
		Secondary:   orDefault(c.Secondary, defaultSecondary),
		Muted:       orDefault(c.Muted, defaultMuted),
		Background:  orDefault(c.Background, defaultBackground),
		MaxWidth:    defaultMaxWidth,
		RadiusMd:    defaultRadius,
	}
	t.Accent = orDefault(c.Accent, t.Secondary)
	if len(t.Fallbacks) == 0 {
		t.Fallbacks = defaultFallbacks
	}
	t.Text = ensureTextContrast(t.Background, orDefault(c.Text, defaultText))
	return t
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// CSSVariables renders the tokens as a :root declaration block.
func (t DesignTokens) CSSVariables() string {
	fallbacks := strings.Join(t.Fallbacks, ", ")
	var sb strings.Builder
	sb.WriteString(":root {\n")
	fmt.Fprintf(&sb, "  --font-heading: %q, %s;\n", t.FontHeading, fallbacks)
	fmt.Fprintf(&sb, "  --font-body: %q, %s;\n", t.FontBody, fallbacks)
	fmt.Fprintf(&sb, "  --color-primary: %s;\n", t.Primary)
	fmt.Fprintf(&sb, "  --color-secondary: %s;\n", t.Secondary)
	fmt.Fprintf(&sb, "  --color-accent: %s;\n", t.Accent)
	fmt.Fprintf(&sb, "  --color-muted: %s;\n", t.Muted)
	fmt.Fprintf(&sb, "  --color-bg: %s;\n", t.Background)
	fmt.Fprintf(&sb, "  --color-text: %s;\n", t.Text)
	fmt.Fprintf(&sb, "  --max-width: %dpx;\n", t.MaxWidth)
	fmt.Fprintf(&sb, "  --radius-md: %dpx;\n", t.RadiusMd)
	sb.WriteString("}")
	return sb.String()
}

// wcagAA is the minimum contrast ratio for body text.
const wcagAA = 4.5

// ensureTextContrast returns textColor when it meets WCAG AA contrast
// against bg, otherwise whichever of black or white contrasts better.
func ensureTextContrast(bg, textColor string) string {
	if contrastRatio(bg, textColor) >= wcagAA {
		return textColor
	}
	black := contrastRatio(bg, "#000000")
	white := contrastRatio(bg, "#FFFFFF")
	if black >= white {
		return "#000000"
	}
	return "#FFFFFF"
}

// contrastRatio computes the WCAG contrast ratio between two hex colors.
// Unparseable colors yield ratio 21 (treated as maximally safe) so a bad
// input never forces a rewrite.
func contrastRatio(c1, c2 string) float64 {
	l1, ok1 := relativeLuminance(c1)
	l2, ok2 := relativeLuminance(c2)
	if !ok1 || !ok2 {
		return 21
	}
	lighter, darker := l1, l2
	if darker > lighter {
		lighter, darker = darker, lighter
	}
	return (lighter + 0.05) / (darker + 0.05)
}

// relativeLuminance converts a #RRGGBB color to WCAG relative luminance.
func relativeLuminance(hex string) (float64, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, false
	}

	channel := func(s string) (float64, bool) {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, false
		}
		c := float64(v) / 255
		if c <= 0.03928 {
			return c / 12.92, true
		}
		return math.Pow((c+0.055)/1.055, 2.4), true
	}

	r, ok := channel(hex[0:2])
	if !ok {
		return 0, false
	}
	g, ok := channel(hex[2:4])
	if !ok {
		return 0, false
	}
	b, ok := channel(hex[4:6])
	if !ok {
		return 0, false
	}
	return 0.2126*r + 0.7152*g + 0.0722*b, true
}
