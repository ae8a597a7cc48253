package fetch

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

	"eua-price-lab/internal/domain"
)

// spanPlaceholder in an endpoint URL is replaced by the span in years.
const spanPlaceholder = "{span}"

// HTTPSource fetches candidate payloads from a JSON HTTP API.
type HTTPSource struct {
	name     string
	endpoint string
	client   *http.Client
}

// NewHTTPSource creates an HTTP source. The endpoint may contain a
// {span} placeholder; without one the span is appended as a query
// parameter.
func NewHTTPSource(name, endpoint string, proxyURL string) *HTTPSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPSource{
		name:     name,
		endpoint: endpoint,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

var _ Source = (*HTTPSource)(nil)

func (s *HTTPSource) Name() string { return s.name }

// Fetch retrieves and decodes one JSON payload for the span. The decoded
// document is returned whole; the extractor owns its interpretation.
func (s *HTTPSource) Fetch(ctx context.Context, spanYears int) ([]domain.RawCandidate, error) {
	u := spanURL(s.endpoint, spanYears)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", s.name, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch: %w", s.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", s.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d", s.name, resp.StatusCode)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", s.name, err)
	}
	return []domain.RawCandidate{doc}, nil
}

// spanURL resolves the span placeholder, or appends span=<years>y when
// the endpoint has none.
func spanURL(endpoint string, spanYears int) string {
	if strings.Contains(endpoint, spanPlaceholder) {
		return strings.ReplaceAll(endpoint, spanPlaceholder, strconv.Itoa(spanYears))
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "span=" + strconv.Itoa(spanYears) + "y"
}
