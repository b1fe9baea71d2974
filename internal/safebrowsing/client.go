// Package safebrowsing implements a client for the Google Safe Browsing v4
// threatMatches:find endpoint.
package safebrowsing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dkraev/safecheck/internal/models"
)

const (
	DefaultEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

	clientID      = "safecheck"
	clientVersion = "1.0"

	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

var ErrMissingAPIKey = fmt.Errorf("safe browsing api key is not set: %w", models.ErrConfiguration)

type threatRequest struct {
	Client     clientInfo `json:"client"`
	ThreatInfo threatInfo `json:"threatInfo"`
}

type clientInfo struct {
	ClientID      string `json:"clientId"`
	ClientVersion string `json:"clientVersion"`
}

type threatInfo struct {
	ThreatTypes      []string      `json:"threatTypes"`
	PlatformTypes    []string      `json:"platformTypes"`
	ThreatEntryTypes []string      `json:"threatEntryTypes"`
	ThreatEntries    []threatEntry `json:"threatEntries"`
}

type threatEntry struct {
	URL string `json:"url"`
}

type threatResponse struct {
	Matches []json.RawMessage `json:"matches"`
}

type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewClient(apiKey string) *Client {
	return NewClientWithEndpoint(apiKey, DefaultEndpoint)
}

func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Query asks the reputation service about one URL. It returns true only when
// the service reports at least one threat match. A transport failure, a
// non-2xx status, or an undecodable body is an error, never a match.
func (c *Client) Query(ctx context.Context, targetURL string) (bool, error) {
	if c.apiKey == "" {
		return false, ErrMissingAPIKey
	}

	payload := threatRequest{
		Client: clientInfo{
			ClientID:      clientID,
			ClientVersion: clientVersion,
		},
		ThreatInfo: threatInfo{
			ThreatTypes:      []string{"MALWARE", "SOCIAL_ENGINEERING"},
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries:    []threatEntry{{URL: targetURL}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal request: %w", err)
	}

	apiURL := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("safe browsing request: %w: %w", models.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return false, fmt.Errorf("safe browsing status %d: %w", resp.StatusCode, models.ErrDependencyUnavailable)
	}

	var decoded threatResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}

	return len(decoded.Matches) > 0, nil
}
