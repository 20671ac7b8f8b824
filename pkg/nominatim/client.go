package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Nominatim instance run by the OSM foundation.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

const defaultUserAgent = "nominatim-cli/1.0 (+https://github.com/sells-group/nominatim-cli)"

// ErrNoResult is returned when the service answered but found nothing for
// the query. Callers test for it with errors.Is.
var ErrNoResult = eris.New("nominatim: no result")

// Client executes queries against a Nominatim instance.
type Client interface {
	// Search runs a forward geocoding query.
	Search(ctx context.Context, q *SearchQuery) ([]Place, error)
	// Reverse resolves a coordinate pair or OSM object to a place.
	Reverse(ctx context.Context, q *ReverseQuery) (*Place, error)
	// Lookup resolves a set of OSM objects to places.
	Lookup(ctx context.Context, q *LookupQuery) ([]Place, error)
	// Details fetches the indexed record of a single place.
	Details(ctx context.Context, q *DetailsQuery) (*PlaceDetails, error)
	// Status checks the health of the service.
	Status(ctx context.Context) (*ServerStatus, error)
	// Raw executes any query in the given format and returns the response
	// body undecoded. Useful for html and text formats.
	Raw(ctx context.Context, q Query, format string) ([]byte, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL points the client at a different Nominatim instance.
func WithBaseURL(baseURL string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header. The public instance's usage
// policy requires one that identifies the application.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithEmail adds an email parameter to every request, as the public
// instance's usage policy asks of large-volume users.
func WithEmail(email string) Option {
	return func(c *httpClient) {
		c.email = email
	}
}

// WithFormat sets the response format negotiated for decoded operations.
// The default is jsonv2.
func WithFormat(format string) Option {
	return func(c *httpClient) {
		if format != "" {
			c.format = format
		}
	}
}

// WithDebug enables debug logging of request URLs and response sizes.
func WithDebug(on bool) Option {
	return func(c *httpClient) {
		c.debug = on
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	email     string
	format    string
	debug     bool
	http      *http.Client
}

// NewClient creates a Nominatim client with the given options.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		format:    "jsonv2",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes an HTTP request with exponential backoff retries on
// transient failures (429, 500, 502, 503). Returns the response body and
// status code on success, or the last error after exhausting retries.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "nominatim: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("nominatim: status %d: %s", resp.StatusCode, truncateBody(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

// get negotiates the format against the query's accepted list, encodes the
// accumulated parameters and executes the request.
func (c *httpClient) get(ctx context.Context, q Query, format string) ([]byte, error) {
	if !q.Accepts(format) {
		return nil, eris.Wrapf(ErrInvalidParameter,
			"format %q: %s query accepts %s", format, q.Path(), strings.Join(q.Formats(), ", "))
	}

	vals := q.Values()
	vals.Set("format", format)
	if c.email != "" {
		vals.Set("email", c.email)
	}

	reqURL := c.baseURL + "/" + q.Path() + "?" + vals.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrapf(err, "nominatim: %s request failed", q.Path())
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("nominatim: %s returned status %d: %s", q.Path(), statusCode, truncateBody(body))
	}

	if c.debug {
		zap.L().Debug("nominatim response",
			zap.String("url", reqURL),
			zap.Int("bytes", len(body)),
		)
	}
	return body, nil
}

// Search implements Client.
func (c *httpClient) Search(ctx context.Context, q *SearchQuery) ([]Place, error) {
	body, err := c.get(ctx, q, c.format)
	if err != nil {
		return nil, err
	}

	switch c.format {
	case "json", "jsonv2":
		var places []Place
		if err := json.Unmarshal(body, &places); err != nil {
			return nil, eris.Wrap(err, "nominatim: decode search response")
		}
		return places, nil
	case "xml":
		return decodeXMLPlaces(body, q.Path())
	default:
		return nil, eris.Errorf("nominatim: format %q is not decodable, use Raw", c.format)
	}
}

// Reverse implements Client.
func (c *httpClient) Reverse(ctx context.Context, q *ReverseQuery) (*Place, error) {
	body, err := c.get(ctx, q, c.format)
	if err != nil {
		return nil, err
	}

	switch c.format {
	case "json", "jsonv2":
		var payload struct {
			Place
			Error json.RawMessage `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, eris.Wrap(err, "nominatim: decode reverse response")
		}
		if len(payload.Error) > 0 {
			return nil, eris.Wrapf(ErrNoResult, "%s", string(payload.Error))
		}
		return &payload.Place, nil
	case "xml":
		return decodeXMLReverse(body)
	default:
		return nil, eris.Errorf("nominatim: format %q is not decodable, use Raw", c.format)
	}
}

// Lookup implements Client.
func (c *httpClient) Lookup(ctx context.Context, q *LookupQuery) ([]Place, error) {
	body, err := c.get(ctx, q, c.format)
	if err != nil {
		return nil, err
	}

	switch c.format {
	case "json", "jsonv2":
		var places []Place
		if err := json.Unmarshal(body, &places); err != nil {
			return nil, eris.Wrap(err, "nominatim: decode lookup response")
		}
		return places, nil
	case "xml":
		return decodeXMLPlaces(body, q.Path())
	default:
		return nil, eris.Errorf("nominatim: format %q is not decodable, use Raw", c.format)
	}
}

// Details implements Client. The details endpoint only renders json, so the
// client's configured format does not apply here.
func (c *httpClient) Details(ctx context.Context, q *DetailsQuery) (*PlaceDetails, error) {
	body, err := c.get(ctx, q, "json")
	if err != nil {
		return nil, err
	}

	var details PlaceDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, eris.Wrap(err, "nominatim: decode details response")
	}
	return &details, nil
}

// Status implements Client. Always negotiated as json; use Raw for the
// plain-text form.
func (c *httpClient) Status(ctx context.Context) (*ServerStatus, error) {
	body, err := c.get(ctx, NewStatusQuery(), "json")
	if err != nil {
		return nil, err
	}

	var status ServerStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, eris.Wrap(err, "nominatim: decode status response")
	}
	return &status, nil
}

// Raw implements Client.
func (c *httpClient) Raw(ctx context.Context, q Query, format string) ([]byte, error) {
	return c.get(ctx, q, format)
}

// truncateBody keeps error messages readable when the service answers with
// a full html error page.
func truncateBody(body []byte) string {
	const max = 280
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
