package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wepub/types"
)

// RelayClient is a thin HTTP client for the publish relay
type RelayClient struct {
	baseURL string
	client  *http.Client
}

// NewRelayClient creates a new relay client. The publish call drives a
// multi-step upstream workflow, so the timeout is generous.
func NewRelayClient(baseURL string) *RelayClient {
	return &RelayClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Publish submits the request and returns the relay's result
func (c *RelayClient) Publish(req types.PublishRequest) (*types.PublishResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/publish", "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("relay returned %d: %s", resp.StatusCode, string(body))
	}

	var result types.PublishResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
