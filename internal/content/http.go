package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// HTTPSource queries the CMS REST API: GET {base}/api/{collection}.
// Transport errors and 5xx responses are retried; other failures are not.
type HTTPSource struct {
	base     string
	apiKey   string
	client   *http.Client
	attempts uint
	delay    time.Duration
	logger   *zap.Logger
}

type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithRetry sets the number of attempts and the base backoff delay.
func WithRetry(attempts uint, delay time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.attempts, s.delay = attempts, delay }
}

// WithAPIKey authenticates as a CMS user with an API key.
func WithAPIKey(key string) HTTPOption {
	return func(s *HTTPSource) { s.apiKey = key }
}

func NewHTTPSource(base string, logger *zap.Logger, opts ...HTTPOption) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HTTPSource{
		base:     strings.TrimSuffix(base, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
		delay:    200 * time.Millisecond,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StatusError is a non-2xx response.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s: %s", e.URL, e.Status, http.StatusText(e.Status), e.Body)
}

func (s *HTTPSource) Find(ctx context.Context, q Query) (*Result, error) {
	if q.Collection == "" {
		return nil, fmt.Errorf("query without collection")
	}
	u := s.base + "/api/" + url.PathEscape(q.Collection) + "?" + encodeQuery(q).Encode()

	return retry.DoWithData(
		func() (*Result, error) { return s.get(ctx, u) },
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("cms request failed, retrying",
				zap.String("url", u), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
}

func (s *HTTPSource) get(ctx context.Context, u string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "users API-Key "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.Unrecoverable(ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		serr := &StatusError{URL: u, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		if resp.StatusCode >= 500 {
			return nil, serr
		}
		return nil, retry.Unrecoverable(serr)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("decode %s: %w", u, err))
	}
	s.logger.Debug("cms query", zap.String("url", u), zap.Int("docs", len(res.Docs)))
	return &res, nil
}

// encodeQuery builds the bracketed query string the CMS REST API parses.
func encodeQuery(q Query) url.Values {
	v := url.Values{}
	for _, f := range q.Where {
		v.Add("where["+f.Field+"]["+string(f.Op)+"]", f.Value)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 && !q.Unpaged {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Unpaged {
		v.Set("pagination", "false")
	}
	v.Set("depth", strconv.Itoa(q.Depth))
	if q.Draft {
		v.Set("draft", "true")
	}
	return v
}
