package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps calls to the diary backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Analyze submits a diary entry and returns the AI analysis text
func (c *Client) Analyze(ctx context.Context, content string) (string, error) {
	req := AnalyzeRequest{Content: content}

	var out AnalyzeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/analyze", req, &out); err != nil {
		return "", err
	}

	return out.Analysis, nil
}

// History returns all stored diary records, newest first
func (c *Client) History(ctx context.Context) ([]DiaryRecord, error) {
	var out HistoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/history", nil, &out); err != nil {
		return nil, err
	}

	return out.History, nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The backend sends {"error": "..."} bodies on failure; fall back to
		// the raw body when that shape is absent
		b, _ := io.ReadAll(resp.Body)

		var errResp ErrorResponse
		if err := json.Unmarshal(b, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
