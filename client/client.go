// client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	logger "github.com/imdes/console/logging"
)

// TokenSource supplies the current bearer token, if any. The session store
// implements it; tests may plug in a fixed token.
type TokenSource interface {
	Token() string
}

// Response is the one envelope every upstream call is normalized into.
// Failures of any kind (HTTP status, decode, network) surface here as
// Success=false with a message in Error; nothing escapes this boundary as
// a panic or a raw transport error.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Decode unmarshals the normalized payload into v.
func (r Response) Decode(v interface{}) error {
	if !r.Success {
		return fmt.Errorf("%s", r.Error)
	}
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// Client issues REST calls against the exchange backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	userAgent  string
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, userAgent string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		userAgent:  userAgent,
	}
}

// Do performs a single request and normalizes the result. The upstream
// endpoints disagree on their wrapper key (`data`, `ministries`, `roles`,
// or a bare object); normalization happens here so callers see one shape.
func (c *Client) Do(ctx context.Context, method, endpoint string, body interface{}) Response {
	url := c.baseURL + endpoint

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{Success: false, Error: err.Error()}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Upstream request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return Response{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	decodeErr := json.NewDecoder(resp.Body).Decode(&raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errMsg := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		if decodeErr == nil {
			if msg := rawString(raw["message"]); msg != "" {
				errMsg = msg
			}
		}
		return Response{Success: false, Error: errMsg}
	}

	if decodeErr != nil {
		// 2xx with an empty body (e.g. a delete) is still a success.
		if errors.Is(decodeErr, io.EOF) {
			return Response{Success: true}
		}
		return Response{Success: false, Error: decodeErr.Error()}
	}

	return Response{
		Success: true,
		Data:    normalize(raw),
		Message: rawString(raw["message"]),
	}
}

func (c *Client) Get(ctx context.Context, endpoint string) Response {
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) Response {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body interface{}) Response {
	return c.Do(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) Response {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}

// normalize unwraps the payload from whichever wrapper key the endpoint
// chose. Bodies without a known wrapper are passed through whole.
func normalize(raw map[string]json.RawMessage) json.RawMessage {
	for _, key := range []string{"data", "ministries", "roles"} {
		if payload, ok := raw[key]; ok {
			return payload
		}
	}
	whole, err := json.Marshal(stripMessage(raw))
	if err != nil {
		return nil
	}
	return whole
}

func stripMessage(raw map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		if k == "message" {
			continue
		}
		out[k] = v
	}
	return out
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
