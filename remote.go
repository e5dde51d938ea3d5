package brandkit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// remoteEngine abstracts the hosted generation service so the orchestrator
// can fall back to local engines when the service misbehaves.
type remoteEngine interface {
	Generate(ctx context.Context, req RenderRequest, brand BrandRecord, content ContentDocument, images ResolvedImageSet) (string, error)
}

var _ remoteEngine = (*remoteClient)(nil)

// remoteGenerateRequest is the wire payload sent to the generation service.
type remoteGenerateRequest struct {
	Template string             `json:"template"`
	Brand    BrandRecord        `json:"brand"`
	Campaign CampaignParameters `json:"campaign"`
	Content  ContentDocument    `json:"content"`
	Images   ResolvedImageSet   `json:"images"`
}

// remoteGenerateResponse is the wire payload returned by the service.
type remoteGenerateResponse struct {
	HTML   string `json:"html"`
	Prompt string `json:"prompt,omitempty"`
}

// remoteClient talks to a hosted generation endpoint over HTTP.
type remoteClient struct {
	http *resty.Client

	// lastPrompt records the source prompt from the most recent successful
	// generation for the manifest. The orchestrator serializes renders per
	// service instance, so no lock is needed.
	lastPrompt string
}

// newRemoteClient configures a resty client for the generation service.
// Retries cover transient faults only; anything that survives them is
// reported as errRemoteUnavailable so the caller falls through the chain.
func newRemoteClient(baseURL, apiKey string, timeout time.Duration) *remoteClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &remoteClient{http: client}
}

// Generate asks the service to produce full HTML markup for the request.
func (c *remoteClient) Generate(ctx context.Context, req RenderRequest, brand BrandRecord, content ContentDocument, images ResolvedImageSet) (string, error) {
	payload := remoteGenerateRequest{
		Template: req.Template,
		Brand:    brand,
		Campaign: req.Campaign,
		Content:  content,
		Images:   images,
	}

	var out remoteGenerateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/v1/generate")
	if err != nil {
		return "", fmt.Errorf("%w: %v", errRemoteUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d", errRemoteUnavailable, resp.StatusCode())
	}
	if out.HTML == "" {
		return "", fmt.Errorf("%w: empty response body", errRemoteUnavailable)
	}

	c.lastPrompt = out.Prompt
	return out.HTML, nil
}
