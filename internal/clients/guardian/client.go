// Package guardian fetches article candidates from the Guardian content API.
package guardian

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ftedeschi/marxpress/internal/models"
)

const (
	pageSize       = "20"
	requestTimeout = 30 * time.Second
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// FetchSection performs one paginated fetch for a section, newest first,
// and returns the candidates that survive extraction. Failures degrade to
// an empty batch: the orchestrator's polling cadence is the only retry.
func (c *Client) FetchSection(ctx context.Context, section string) []models.Candidate {
	endpoint := c.baseURL + "/search?" + c.queryParams(section).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Error("[Guardian] Failed to build request", slog.String("error", err.Error()))
		return nil
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("[Guardian] Request failed",
			slog.String("section", section),
			slog.String("error", err.Error()))
		return nil
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Warn("[Guardian] Unexpected response status",
			slog.String("section", section),
			slog.Int("status", res.StatusCode))
		return nil
	}

	var payload models.GuardianSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		slog.Warn("[Guardian] Failed to parse JSON response",
			slog.String("section", section),
			slog.String("error", err.Error()))
		return nil
	}

	candidates := make([]models.Candidate, 0, len(payload.Response.Results))
	for _, result := range payload.Response.Results {
		candidate, err := candidateFromResult(result)
		if err != nil {
			slog.Warn("[Guardian] Inconsistent fields in API response, skipping article",
				slog.String("section", section),
				slog.String("error", err.Error()))
			continue
		}
		candidates = append(candidates, candidate)
	}

	slog.Info("[Guardian] Section scraped",
		slog.String("section", strings.ToUpper(section)),
		slog.Int("articles", len(candidates)))
	return candidates
}

func (c *Client) queryParams(section string) url.Values {
	return url.Values{
		"section":     {section},
		"order-by":    {"newest"},
		"page-size":   {pageSize},
		"show-fields": {"all"},
		"show-tags":   {"keyword"},
		"api-key":     {c.apiKey},
	}
}
