package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"disasterhub/core/metrics"

	"go.uber.org/zap"
)

// ErrNoLocations is returned when the model produced no usable place names.
var ErrNoLocations = errors.New("no locations extracted")

// Config holds configuration for the generative AI provider.
type Config struct {
	// APIKey authenticates against the provider.
	APIKey string `mapstructure:"api_key" default:""`
	// Model is the model identifier to invoke.
	Model string `mapstructure:"model" default:"gemini-2.5-flash"`
	// BaseURL is the API root, overridable for tests.
	BaseURL string `mapstructure:"base_url" default:"https://generativelanguage.googleapis.com"`
}

// Verdict is the normalized outcome of an image verification.
type Verdict string

const (
	VerdictVerified Verdict = "Verified"
	VerdictRejected Verdict = "Rejected"
	// VerdictUnknown covers any model answer outside the prompt contract.
	VerdictUnknown Verdict = "Unknown"
)

const extractPrompt = `Extract only the city or neighborhood names from this disaster description: %q. Return as a comma-separated list.`

const verifyPrompt = `Analyze this image for signs of manipulation or verify its disaster context. Answer "Verified" if the image is real and "Rejected" if you think it is manipulated, AI generated or morphed. Your answer should be either of these two only.`

// Client invokes the generative model over its REST API.
type Client struct {
	cfg     Config
	http    *http.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg Config, m *metrics.Metrics, logger *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 20 * time.Second},
		metrics: m,
		logger:  logger,
	}
}

// request/response shapes for the generateContent endpoint.

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []part `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractLocations asks the model for the place names mentioned in a
// disaster description, in the order the model listed them. Duplicates are
// not removed. An empty answer is an error: callers depend on this lookup
// exclusively.
func (c *Client) ExtractLocations(ctx context.Context, description string) ([]string, error) {
	text, err := c.generate(ctx, []part{{Text: fmt.Sprintf(extractPrompt, description)}})
	if err != nil {
		return nil, err
	}

	var locations []string
	for _, piece := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		if loc := strings.TrimSpace(piece); loc != "" {
			locations = append(locations, loc)
		}
	}

	if len(locations) == 0 {
		c.metrics.ProviderError("gemini")
		return nil, ErrNoLocations
	}
	return locations, nil
}

// VerifyImage submits image bytes to the vision model and normalizes its
// free-text answer against the expected enumeration. Anything outside the
// prompt contract maps to Unknown and is logged as an anomaly.
func (c *Client) VerifyImage(ctx context.Context, image []byte, mimeType string) (Verdict, error) {
	parts := []part{
		{Text: verifyPrompt},
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}

	text, err := c.generate(ctx, parts)
	if err != nil {
		return "", err
	}

	switch answer := strings.TrimSpace(text); {
	case strings.EqualFold(answer, string(VerdictVerified)):
		return VerdictVerified, nil
	case strings.EqualFold(answer, string(VerdictRejected)):
		return VerdictRejected, nil
	default:
		c.logger.Warn("Model verdict outside contract", zap.String("answer", answer))
		return VerdictUnknown, nil
	}
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	c.metrics.ProviderCall("gemini")

	var reqBody generateRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []part `json:"parts"`
	}{Parts: parts})

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ProviderError("gemini")
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.metrics.ProviderError("gemini")
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.metrics.ProviderError("gemini")
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		c.metrics.ProviderError("gemini")
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
