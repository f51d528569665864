// Package backend talks to the AuditTrail endpoint: one POST per submission,
// no retries, the response body treated as an opaque report.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/audittrail/trailgauge/internal/domain/audit"
)

// Client posts a query to the audit endpoint and returns the report text.
// The encoding is fixed at construction; a configured client never mixes
// request encodings.
type Client struct {
	endpoint   string
	encoding   string
	httpClient *http.Client
}

const (
	encodingText = "text"
	encodingJSON = "json"
)

func NewClient(endpoint string, encoding string) *Client {
	if encoding == "" {
		encoding = encodingText
	}
	return &Client{
		endpoint:   endpoint,
		encoding:   encoding,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

// envelope is the JSON response shape some deployments return instead of a
// plain-text report. success=false is an application-level error even on 200.
type envelope struct {
	Report  string `json:"report"`
	Success *bool  `json:"success"`
}

// jsonQuery is the request body under the JSON encoding.
type jsonQuery struct {
	Question string `json:"question"`
}

// Audit submits one query and interprets the response. Non-2xx statuses and
// network failures come back as *audit.TransportError; 2xx bodies that cannot
// be read as a report come back as *audit.ResponseShapeError.
func (c *Client) Audit(ctx context.Context, query string) (string, error) {
	var body io.Reader
	var contentType string
	switch c.encoding {
	case encodingJSON:
		payload, err := json.Marshal(jsonQuery{Question: query})
		if err != nil {
			return "", err
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	default:
		body = strings.NewReader(query)
		contentType = "text/plain"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &audit.TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &audit.TransportError{Endpoint: c.endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &audit.TransportError{Endpoint: c.endpoint, Status: resp.StatusCode}
	}

	return c.interpret(resp.Header.Get("Content-Type"), raw)
}

// interpret reads the body under either accepted shape: a JSON envelope with
// a report field and a success flag, or a raw text report.
func (c *Client) interpret(contentType string, raw []byte) (string, error) {
	text := string(raw)
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return "", &audit.ResponseShapeError{Endpoint: c.endpoint, Detail: "empty response body"}
	}

	if strings.Contains(contentType, "application/json") || strings.HasPrefix(trimmed, "{") {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return "", &audit.ResponseShapeError{Endpoint: c.endpoint, Detail: "invalid JSON envelope"}
		}
		if env.Success != nil && !*env.Success {
			return "", &audit.ResponseShapeError{Endpoint: c.endpoint, Detail: "backend reported failure"}
		}
		if env.Report == "" {
			return "", &audit.ResponseShapeError{Endpoint: c.endpoint, Detail: "envelope has no report field"}
		}
		return env.Report, nil
	}

	// The backend signals some failures inside an HTTP 200 text body.
	if strings.HasPrefix(trimmed, "Error:") || strings.HasPrefix(trimmed, "System Error:") {
		return "", &audit.ResponseShapeError{Endpoint: c.endpoint, Detail: trimmed}
	}

	return text, nil
}
