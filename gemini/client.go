package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/onbuch/tutor"
	"github.com/vincent-petithory/dataurl"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ tutor.ChatModel = (*Client)(nil)

// ErrEmptyResponse indicates the model returned no candidate text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Client implements [tutor.ChatModel] for the Google Gemini API.
type Client struct {
	model      string
	maxTokens  int
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID. Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithMaxTokens sets the output token limit.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithBaseURL overrides the Gemini API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Gemini [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat sends the conversation and the new message to Gemini and returns the
// concatenated text of the first candidate.
func (c *Client) Chat(ctx context.Context, req tutor.ChatRequest) (string, error) {
	if req.APIKey == "" {
		return "", fmt.Errorf("gemini: %w", tutor.ErrMissingAPIKey)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}

	last, err := ConvertMessage(req.Message, req.Image)
	if err != nil {
		return "", err
	}
	contents := append(ConvertHistory(req.History), last)

	gc, err := genai.NewClient(ctx, c.clientConfig(req.APIKey))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	resp, err := gc.Models.GenerateContent(ctx, model, contents, buildConfig(req, c.maxTokens))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return ResponseText(resp)
}

func (c *Client) clientConfig(apiKey string) *genai.ClientConfig {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	return cfg
}

func buildConfig(req tutor.ChatRequest, maxTokens int) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	return config
}

// ConvertHistory converts caller-owned turns to genai Contents.
// Exported for testing.
func ConvertHistory(turns []tutor.Turn) []*genai.Content {
	result := make([]*genai.Content, 0, len(turns)+1)
	for _, t := range turns {
		role := "user"
		if t.Role == tutor.RoleModel {
			role = "model"
		}
		result = append(result, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}
	return result
}

// ConvertMessage builds the user content for the new message, inlining the
// image when a data URI is given. Exported for testing.
func ConvertMessage(message, image string) (*genai.Content, error) {
	var parts []*genai.Part
	if message != "" {
		parts = append(parts, &genai.Part{Text: message})
	}
	if image != "" {
		du, err := dataurl.DecodeString(image)
		if err != nil {
			return nil, fmt.Errorf("gemini: decode image: %w", err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: du.MediaType.ContentType(),
				Data:     du.Data,
			},
		})
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("gemini: empty message: %w", tutor.ErrValidation)
	}
	return &genai.Content{Role: "user", Parts: parts}, nil
}

// ResponseText returns the non-thought text of the first candidate.
// Exported for testing.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: blocked (%s)", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
