package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Gemini Generative Language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrMissingAPIKey indicates no credential was configured. Set gemini.api_key
// in the config file or the GEMINI_API_KEY environment variable.
var ErrMissingAPIKey = errors.New("missing Gemini API key: set gemini.api_key in config or GEMINI_API_KEY")

// Client is a minimal Gemini API client speaking the generateContent
// endpoint over plain HTTP.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Gemini API request/response structures
type geminiRequest struct {
	Contents          []Content         `json:"contents"`
	Tools             []Tool            `json:"tools,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata *geminiUsage      `json:"usageMetadata,omitempty"`
	Error         *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
	Index        int     `json:"index"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewClient creates a Gemini client. If baseURL is empty, DefaultBaseURL is
// used.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateRequest is one generateContent invocation.
type GenerateRequest struct {
	Model            string
	System           string
	Contents         []Content
	Tools            []Tool
	GenerationConfig *GenerationConfig
}

// Generate performs a single blocking generateContent call and returns the
// first candidate's content. The call is attempted exactly once; there are
// no retries.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*Content, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	geminiReq := &geminiRequest{
		Contents:         req.Contents,
		Tools:            req.Tools,
		GenerationConfig: req.GenerationConfig,
	}
	if req.System != "" {
		geminiReq.SystemInstruction = &Content{
			Parts: []Part{{Text: req.System}},
		}
	}

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, req.Model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return nil, fmt.Errorf("Gemini API error: %s (code: %d)", geminiResp.Error.Message, geminiResp.Error.Code)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	if len(geminiResp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	content := geminiResp.Candidates[0].Content
	if len(content.Parts) == 0 {
		return nil, fmt.Errorf("no content parts in response")
	}
	if content.Role == "" {
		content.Role = RoleModel
	}

	return &content, nil
}
