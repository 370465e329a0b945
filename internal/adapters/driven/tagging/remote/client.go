// Package remote talks to the HTTP tagging service: it uploads source PDFs
// for tagging and posts reviewed snapshots back for rendering.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.TaggingService = (*Client)(nil)
	_ driven.RenderService  = (*Client)(nil)
)

// Endpoint paths relative to the base URL.
const (
	tagPath    = "api/ai-tag"
	renderPath = "api/generate_pdf"
	pingPath   = "api/ping"
)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultServiceURL
	DefaultTimeout   = domain.DefaultServiceTimeout * time.Second
	DefaultRateLimit = domain.DefaultServiceRateLimit
	DefaultBurst     = 2
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Config holds configuration for the tagging service client.
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:8000/.
	BaseURL string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration

	// RateLimit is the sustained requests per second (default: 2).
	RateLimit float64

	// Burst is the rate limiter burst size (default: 2).
	Burst int

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client is the HTTP client for the tagging service.
type Client struct {
	client  *http.Client
	baseURL *url.URL
	limiter *RateLimiter
}

// NewClient creates a client for the service at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Burst == 0 {
		cfg.Burst = DefaultBurst
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: service url %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: base,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.Burst),
	}, nil
}

// BaseURL returns the normalised service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Tag uploads file as multipart field "file" and decodes the tagging result.
func (c *Client) Tag(ctx context.Context, file domain.SourceFile) (*domain.TagResponse, error) {
	body, contentType, err := multipartBody(file)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, tagPath, contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out domain.TagResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	logger.Debug("remote: tagged %s: %d pages, %d regions", file.Name, len(out.Pages), len(out.Structure))
	return &out, nil
}

// Render posts snapshot as JSON and returns the rendered document bytes.
func (c *Client) Render(ctx context.Context, snapshot domain.TagResponse) ([]byte, string, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, renderPath, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &domain.NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = domain.PDFContentType
	}
	logger.Debug("remote: rendered %d bytes (%s)", len(data), contentType)
	return data, contentType, nil
}

// Ping checks the service health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, pingPath, "", nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// do sends a request and maps failures: transport errors become
// *domain.NetworkError, non-2xx answers become *domain.ServiceError.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Err: err}
	}

	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, application/pdf")

	logger.Debug("remote: %s %s", method, endpoint)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    errorDetail(raw),
		}
	}
	return resp, nil
}

func multipartBody(file domain.SourceFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := file.Name
	if name == "" {
		name = filepath.Base(file.Path)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", domain.PDFContentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// errorDetail extracts the "detail" field of an error body. Validation
// errors carry a list of objects; their "msg" fields are joined.
func errorDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(raw))
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return string(body.Detail)
}

func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return time.Until(at)
	}
	return 0
}
