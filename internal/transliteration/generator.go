package transliteration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

// Generator produces a text completion for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// maxErrorBody bounds how much of a failed response is kept for logs
const maxErrorBody = 4 << 10

// RESTGenerator calls the Gemini generateContent endpoint directly
type RESTGenerator struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewRESTGenerator creates a generator for model posting to endpoint?key=apiKey
func NewRESTGenerator(endpoint, model, apiKey string, httpClient *http.Client) *RESTGenerator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RESTGenerator{
		endpoint:   endpoint,
		model:      model,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// ModelName returns the configured model
func (g *RESTGenerator) ModelName() string { return g.model }

type generateContentRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's first text part
func (g *RESTGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateContentRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := g.endpoint + "?key=" + url.QueryEscape(g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &models.UpstreamError{
			Service:    "gemini",
			StatusCode: resp.StatusCode,
			Detail:     strings.TrimSpace(string(detail)),
		}
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from Gemini")
	}

	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// SDKGenerator uses the generative-ai-go client for the same model
type SDKGenerator struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewSDKGenerator opens a Gemini client authenticated with apiKey
func NewSDKGenerator(ctx context.Context, apiKey, modelName string) (*SDKGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to init Gemini client: %w", err)
	}

	return &SDKGenerator{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
	}, nil
}

// ModelName returns the configured model
func (g *SDKGenerator) ModelName() string { return g.modelName }

// Generate returns the first text part of the first candidate
func (g *SDKGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(t)), nil
		}
	}
	return "", errors.New("no text in Gemini response")
}

// Close releases the underlying client
func (g *SDKGenerator) Close() error {
	return g.client.Close()
}
