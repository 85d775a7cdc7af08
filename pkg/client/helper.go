package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/KartikZCoding/campusgate/internal/api/presenter"
)

// ErrInvalidSession marks a 401 caused by a missing, expired or otherwise
// rejected saved token; the caller should prompt for a fresh login.
var ErrInvalidSession = fmt.Errorf("session token rejected, log in again")

type APIError struct {
	CorrelationID string
	StatusCode    int
	Message       string
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error: '%s' (correlation: %s)", e.Message, e.CorrelationID)
}

func (c *Client) get(ctx context.Context, path string, result any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint(path), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, path string, payload, result any) (string, error) {
	var body io.Reader
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("marshaling payload: %w", err)
		}
		body = bytes.NewBuffer(bodyBytes)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint(path), body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) (string, error) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	correlationID := resp.Header.Get("X-Correlation-ID")

	if resp.StatusCode >= 400 {
		err := parseErrorResponse(resp)
		// a 401 on an authenticated call means the saved token is no good
		if resp.StatusCode == http.StatusUnauthorized && c.authToken != "" {
			err = fmt.Errorf("%w: %w", ErrInvalidSession, err)
		}
		return correlationID, err
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return correlationID, fmt.Errorf("decoding response: %w", err)
		}
	}
	return correlationID, nil
}

func parseErrorResponse(resp *http.Response) error {
	var errResp presenter.ErrorResponse
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d and unreadable body: %w", resp.StatusCode, err)
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return APIError{
			CorrelationID: errResp.CorrelationID,
			StatusCode:    resp.StatusCode,
			Message:       errResp.Error,
		}
	}
	return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
}
