package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/tokenstore"
	"github.com/google/uuid"
)

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
	timeout time.Duration
	log     *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request; zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func NewClient(baseURL string, tokens tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     logger.New("api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) (int, error) {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) (int, error) {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) (int, error) {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// PostMultipart sends a single file under field as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, data []byte, out interface{}) (int, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return 0, newTransportError(fmt.Errorf("failed to build multipart body: %w", err))
	}
	if _, err := part.Write(data); err != nil {
		return 0, newTransportError(fmt.Errorf("failed to build multipart body: %w", err))
	}
	if err := mw.Close(); err != nil {
		return 0, newTransportError(fmt.Errorf("failed to build multipart body: %w", err))
	}

	return c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, newTransportError(fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}
	return c.do(ctx, method, path, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, newTransportError(err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := tokenstore.Token(c.tokens); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("%s %s failed (%s): %v", method, path, requestID, err)
		return 0, newTransportError(err)
	}
	defer resp.Body.Close()

	c.log.Debug("%s %s -> %d in %s (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, newTransportError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody models.ErrorResponse
		_ = json.Unmarshal(raw, &errBody)
		return resp.StatusCode, newStatusError(resp.StatusCode, errBody.Message, errBody.Error)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, &Error{
				Status:  resp.StatusCode,
				Message: "Unexpected response from server",
				Err:     err,
			}
		}
	}

	return resp.StatusCode, nil
}
