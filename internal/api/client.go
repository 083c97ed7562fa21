// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP resource clients for the knox backend.
//
// One Client instance is shared by every screen. Sessions are cookie-based:
// the client carries an in-memory cookie jar that the session store saves
// and restores across runs. Each helper maps one REST call to one typed
// result; there are no retries and no client-side caching, and errors
// propagate unchanged to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/knox-tui/internal/logx"
)

// Configuration constants for the knox API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// Error variables for common API errors.
var (
	// ErrUnauthorized indicates the session is missing or expired (HTTP 401).
	ErrUnauthorized = errors.New("not signed in")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
)

// APIError represents an error response from the knox backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("knox api error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("knox api error (HTTP %d)", e.Status)
}

// apiErrorResponse is the backend's error body shape.
type apiErrorResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the knox backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        *cookiejar.Jar
	userAgent  string
}

// NewClient creates a new client for the given base URL.
//
// The base URL must be absolute; trailing slashes are stripped so path
// joining stays predictable. The returned client carries a fresh cookie
// jar — restore persisted session cookies through Jar before use.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		jar:     jar,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		userAgent: "knox/0.1.0",
	}, nil
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Jar returns the client's cookie jar for session persistence.
func (c *Client) Jar() *cookiejar.Jar {
	return c.jar
}

// SessionCookies returns the cookies currently held for the backend host.
func (c *Client) SessionCookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	return c.jar.Cookies(u)
}

// RestoreSessionCookies loads previously persisted cookies into the jar.
func (c *Client) RestoreSessionCookies(cookies []*http.Cookie) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	c.jar.SetCookies(u, cookies)
}

// ResolveAvatarURL resolves an avatar reference to a display URL.
// The backend returns either absolute URLs or paths relative to the base
// URL; both forms resolve identically and are otherwise treated as opaque.
func (c *Client) ResolveAvatarURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// doJSON performs a request with an optional JSON body and decodes the
// response into out (which may be nil when the body is irrelevant).
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

// doMultipart performs a multipart form request. Fields are written in map
// iteration order; when filePath is set its contents are attached under
// fileField. The backend accepts partial forms, so empty values are skipped.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, filePath string, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field: %w", err)
		}
	}

	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open avatar file: %w", err)
		}
		defer file.Close()

		part, err := writer.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("failed to copy avatar file: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, out)
}

// do executes a prepared request, maps error statuses, and decodes out.
func (c *Client) do(req *http.Request, out any) error {
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logx.Error(err, "api request failed",
			"method", req.Method, "path", req.URL.Path, "request_id", requestID)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logx.Debug("api request",
		"method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "duration", time.Since(start).String(),
		"request_id", requestID)

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to appropriate Go errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	message := ""
	if err := json.Unmarshal(body, &apiErr); err == nil {
		message = apiErr.Message
	}

	switch statusCode {
	case http.StatusUnauthorized:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, message)
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, message)
		}
		return ErrNotFound
	default:
		return &APIError{Status: statusCode, Message: message}
	}
}
