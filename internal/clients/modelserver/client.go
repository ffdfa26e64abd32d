// Package modelserver talks to the self-hosted GPT-2 inference service.
// The model is a black box behind an HTTP JSON endpoint: it receives a
// prompt plus decoding parameters and answers with raw generated text.
package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ftedeschi/marxpress/internal/models"
)

const defaultTimeout = 60 * time.Second

type generateRequest struct {
	Prompt string `json:"prompt"`
	models.GenerationConfig
}

type generateResponse struct {
	Text string `json:"text"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
	}
}

// GenerateOne asks the model server for a single candidate text. Exactly one
// request per call: generation is cheap to redo on the next polling cycle,
// so transport failures surface to the caller instead of being retried here.
func (c *Client) GenerateOne(ctx context.Context, prompt string, cfg models.GenerationConfig) (string, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt, GenerationConfig: cfg})
	if err != nil {
		return "", fmt.Errorf("[ModelServer] marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("[ModelServer] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("[ModelServer] request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return "", fmt.Errorf("[ModelServer] unexpected status %d", res.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("[ModelServer] decode response: %w", err)
	}
	return out.Text, nil
}
