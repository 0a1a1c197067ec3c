package providerhttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-sync/internal/platform/ratelimit"
	"github.com/riskibarqy/fantasy-sync/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
)

var errTransient = crerr.New("transient provider failure")

// Config describes one provider transport. Every Client built from it owns
// its own rate limiter and circuit breaker.
type Config struct {
	Provider    provider.ID
	BaseURL     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	MaxRetries  int
	MinInterval time.Duration
	Backoff     time.Duration
	Breaker     resilience.CircuitBreakerConfig
	// Authorize decorates every outgoing request with credentials.
	Authorize func(*http.Request)
	// Secrets are scrubbed from error messages and logs.
	Secrets []string
	Logger  *logging.Logger
	Metrics *metrics.Metrics
}

// Request is a GET against the provider API, relative to BaseURL. Some
// providers serve parts of their API from a second host; BaseURL overrides
// the client's for one request while keeping the same rate limiter.
type Request struct {
	BaseURL string
	Path    string
	Query   url.Values
	Header  http.Header
}

// Client performs rate-limited, retried, validated JSON GETs for one
// provider. Errors wrap usecase.ErrUnauthorized for 401/403,
// usecase.ErrNotFound for 404 and usecase.ErrDependencyUnavailable otherwise.
type Client struct {
	provider   provider.ID
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	limiter    *ratelimit.Limiter
	breaker    *resilience.Breaker
	authorize  func(*http.Request)
	secrets    []string
	validate   *validator.Validate
	logger     *logging.Logger
	metrics    *metrics.Metrics
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.With("provider", string(cfg.Provider))

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		if info, ok := provider.Lookup(cfg.Provider); ok {
			baseURL = info.BaseURL
		}
	}

	c := &Client{
		provider:   cfg.Provider,
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		maxRetries: maxRetries,
		backoff:    backoff,
		authorize:  cfg.Authorize,
		secrets:    nonEmpty(cfg.Secrets),
		validate:   validator.New(),
		logger:     logger,
		metrics:    cfg.Metrics,
	}
	c.limiter = ratelimit.New(cfg.MinInterval, ratelimit.WithWaitObserver(func(wait time.Duration) {
		c.metrics.ObserveRateLimitWait(string(c.provider), wait)
	}))
	c.breaker = resilience.NewBreaker("provider."+string(cfg.Provider), cfg.Breaker, func(err error) bool {
		return crerr.Is(err, errTransient)
	}, logger)
	return c
}

func (c *Client) Provider() provider.ID {
	return c.provider
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches req and decodes the body into target, then validates it.
// A nil target discards the body.
func (c *Client) GetJSON(ctx context.Context, req Request, target any) error {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return err
	}

	var raw []byte
	err = c.breaker.Execute(func() error {
		body, execErr := c.execute(ctx, fullURL, req.Header)
		raw = body
		return execErr
	})
	switch {
	case crerr.Is(err, resilience.ErrCircuitOpen):
		c.metrics.ObserveRequest(string(c.provider), "circuit_open")
		return fmt.Errorf("%w: %s circuit breaker is open", usecase.ErrDependencyUnavailable, c.provider)
	case err != nil:
		return err
	}

	if target == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode %s response from %s: %v", usecase.ErrDependencyUnavailable, c.provider, req.Path, err)
	}
	if err := c.validatePayload(target); err != nil {
		return fmt.Errorf("%w: invalid %s payload from %s: %v", usecase.ErrDependencyUnavailable, c.provider, req.Path, err)
	}
	return nil
}

func (c *Client) buildURL(req Request) (string, error) {
	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base := c.baseURL
	if req.BaseURL != "" {
		base = strings.TrimRight(req.BaseURL, "/")
	}
	parsed, err := url.Parse(base + path)
	if err != nil {
		return "", fmt.Errorf("%w: build %s url: %v", usecase.ErrInvalidInput, c.provider, err)
	}
	if len(req.Query) > 0 {
		query := parsed.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

func (c *Client) execute(ctx context.Context, fullURL string, header http.Header) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.attempt(ctx, fullURL, header)
		if err == nil {
			c.metrics.ObserveRequest(string(c.provider), "ok")
			return body, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		if !crerr.Is(err, errTransient) {
			break
		}
		if attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "provider request failed", "url", c.redact(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, fullURL string, header http.Header) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", usecase.ErrInvalidInput, err)
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.authorize != nil {
		c.authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(string(c.provider), "network_error")
		return nil, c.transient("send request: %s", c.redact(err.Error()))
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		c.metrics.ObserveRequest(string(c.provider), "network_error")
		return nil, c.transient("read response body: %s", c.redact(err.Error()))
	}
	body := append([]byte(nil), buf.B...)

	switch status := resp.StatusCode; {
	case status >= 200 && status < 300:
		return body, nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		c.metrics.ObserveRequest(string(c.provider), "unauthorized")
		return nil, fmt.Errorf("%w: %s responded status=%d", usecase.ErrUnauthorized, c.provider, status)
	case status == http.StatusNotFound:
		c.metrics.ObserveRequest(string(c.provider), "not_found")
		return nil, fmt.Errorf("%w: %s responded status=404 body=%s", usecase.ErrNotFound, c.provider, c.redact(abbreviateBody(body)))
	case isRetryableStatus(status):
		c.metrics.ObserveRequest(string(c.provider), "transient")
		return nil, c.transient("status=%d body=%s", status, c.redact(abbreviateBody(body)))
	default:
		c.metrics.ObserveRequest(string(c.provider), "error")
		return nil, fmt.Errorf("%w: %s responded status=%d body=%s", usecase.ErrDependencyUnavailable, c.provider, status, c.redact(abbreviateBody(body)))
	}
}

func (c *Client) transient(format string, args ...any) error {
	err := fmt.Errorf("%w: %s "+format, append([]any{usecase.ErrDependencyUnavailable, c.provider}, args...)...)
	return crerr.Mark(err, errTransient)
}

func (c *Client) validatePayload(target any) error {
	value := reflect.ValueOf(target)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		return c.validate.Struct(value.Interface())
	case reflect.Slice:
		for i := 0; i < value.Len(); i++ {
			item := value.Index(i)
			if item.Kind() == reflect.Pointer {
				if item.IsNil() {
					continue
				}
				item = item.Elem()
			}
			if item.Kind() != reflect.Struct {
				continue
			}
			if err := c.validate.Struct(item.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func (c *Client) redact(text string) string {
	for _, secret := range c.secrets {
		text = strings.ReplaceAll(text, secret, "REDACTED")
		if escaped := url.QueryEscape(secret); escaped != secret {
			text = strings.ReplaceAll(text, escaped, "REDACTED")
		}
	}
	return text
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
