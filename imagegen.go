package brandkit

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// imageGenerator produces brand-specific imagery on demand. Implementations
// may fail freely; the image resolution chain treats a failed generation as
// an empty result and moves on.
type imageGenerator interface {
	GenerateImages(ctx context.Context, brand BrandRecord, role ImageRole, n int) ([]string, error)
}

var _ imageGenerator = (*openaiImageGenerator)(nil)

// openaiImageGenerator backs the generated tier of the image chain with the
// OpenAI Images API.
type openaiImageGenerator struct {
	model string
	opts  []option.RequestOption
}

// newOpenAIImageGenerator configures a generator. An empty API key returns
// nil so the chain skips straight to extracted imagery.
func newOpenAIImageGenerator(apiKey, model string) *openaiImageGenerator {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = string(openai.ImageModelDallE3)
	}
	return &openaiImageGenerator{
		model: model,
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}
}

// GenerateImages requests n images for the role and returns their URLs.
// The API produces one image per call for current models, so requests are
// issued sequentially until the count is met or a call fails.
func (g *openaiImageGenerator) GenerateImages(ctx context.Context, brand BrandRecord, role ImageRole, n int) ([]string, error) {
	client := openai.NewClient(g.opts...)

	urls := make([]string, 0, n)
	for i := 0; i < n; i++ {
		resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
			Prompt: imagePrompt(brand, role, i),
			Model:  openai.ImageModel(g.model),
			Size:   openai.ImageGenerateParamsSize1024x1024,
		})
		if err != nil {
			return nil, fmt.Errorf("generating %s image %d: %w", role, i, err)
		}
		if len(resp.Data) == 0 || resp.Data[0].URL == "" {
			return nil, fmt.Errorf("generating %s image %d: empty response", role, i)
		}
		urls = append(urls, resp.Data[0].URL)
	}
	return urls, nil
}

// imagePrompt builds a role-specific prompt from the brand identity.
func imagePrompt(brand BrandRecord, role ImageRole, idx int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Professional marketing imagery for %s", brand.Name)
	if brand.Tagline != "" {
		fmt.Fprintf(&b, " (%s)", brand.Tagline)
	}
	switch role {
	case RoleHero:
		b.WriteString(". Wide hero banner, abstract, brand colors")
	case RoleFeatures:
		fmt.Fprintf(&b, ". Product feature illustration %d, clean flat style", idx+1)
	case RoleProcess:
		fmt.Fprintf(&b, ". Process step %d illustration, minimal line art", idx+1)
	case RoleTestimonials:
		b.WriteString(". Neutral customer portrait, soft lighting")
	}
	if brand.Colors.Primary != "" {
		fmt.Fprintf(&b, ". Dominant color %s", brand.Colors.Primary)
	}
	b.WriteString(". No text or lettering.")
	return b.String()
}
