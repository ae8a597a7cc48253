package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"eua-price-lab/internal/domain"
)

// dataKeywords mark a network response URL as likely carrying series data.
var dataKeywords = []string{
	"api", "data", "chart", "price", "market", "historical", "timeseries",
}

// chartGlobals are window properties probed when no network response
// yields anything. Charting widgets commonly park their series here.
var chartGlobals = []string{
	"__NUXT__", "__NEXT_DATA__", "chartData", "seriesData", "priceData",
}

// BrowserSource drives a headless browser against a charting page and
// captures the JSON its widgets load over the network.
type BrowserSource struct {
	name     string
	pageURL  string
	headless bool
	settle   time.Duration
	logger   *log.Logger
}

// BrowserOptions configures a BrowserSource.
type BrowserOptions struct {
	Name     string
	PageURL  string        // may contain a {span} placeholder
	Headless bool
	Settle   time.Duration // quiet period after load for late XHRs
	Logger   *log.Logger
}

// NewBrowserSource creates a browser-driven source.
func NewBrowserSource(opts BrowserOptions) *BrowserSource {
	if opts.Settle <= 0 {
		opts.Settle = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &BrowserSource{
		name:     opts.Name,
		pageURL:  opts.PageURL,
		headless: opts.Headless,
		settle:   opts.Settle,
		logger:   opts.Logger,
	}
}

var _ Source = (*BrowserSource)(nil)

func (s *BrowserSource) Name() string { return s.name }

// Fetch loads the page for one span and collects every JSON network
// response whose URL looks data-ish. When the page loads its series
// inline instead, well-known chart globals are probed as a fallback.
func (s *BrowserSource) Fetch(ctx context.Context, spanYears int) ([]domain.RawCandidate, error) {
	l := launcher.New().Headless(s.headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%s: launch browser: %w", s.name, err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%s: connect browser: %w", s.name, err)
	}
	defer browser.Close()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%s: open page: %w", s.name, err)
	}
	defer page.Close()

	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		return nil, fmt.Errorf("%s: enable network events: %w", s.name, err)
	}

	var (
		mu         sync.Mutex
		candidates []domain.RawCandidate
	)
	go page.EachEvent(func(e *proto.NetworkResponseReceived) {
		if !dataLikeURL(e.Response.URL) {
			return
		}
		if !strings.Contains(strings.ToLower(e.Response.MIMEType), "json") {
			return
		}
		body, err := (proto.NetworkGetResponseBody{RequestID: e.RequestID}).Call(page)
		if err != nil {
			return
		}
		var doc any
		if json.Unmarshal([]byte(body.Body), &doc) != nil {
			return
		}
		mu.Lock()
		candidates = append(candidates, doc)
		mu.Unlock()
	})()

	target := spanURL(s.pageURL, spanYears)
	if err := page.Navigate(target); err != nil {
		return nil, fmt.Errorf("%s: navigate %s: %w", s.name, target, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%s: wait load: %w", s.name, err)
	}

	// Chart XHRs land after onload.
	select {
	case <-time.After(s.settle):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	mu.Lock()
	got := make([]domain.RawCandidate, len(candidates))
	copy(got, candidates)
	mu.Unlock()

	if len(got) == 0 {
		got = s.probeGlobals(page)
	}

	s.logger.Printf("source %s span %dy: %d candidate payloads", s.name, spanYears, len(got))
	return got, nil
}

// probeGlobals evaluates known chart globals on the page and keeps
// whatever round-trips through JSON.
func (s *BrowserSource) probeGlobals(page *rod.Page) []domain.RawCandidate {
	var out []domain.RawCandidate
	for _, name := range chartGlobals {
		res, err := page.Eval(globalProbeJS(name))
		if err != nil {
			continue
		}
		raw := res.Value.Str()
		if raw == "" || raw == "null" || raw == "undefined" {
			continue
		}
		var doc any
		if json.Unmarshal([]byte(raw), &doc) != nil {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// globalProbeJS builds the expression serializing one window global.
func globalProbeJS(name string) string {
	return fmt.Sprintf(`() => { try { return JSON.stringify(window[%q]) || "" } catch (e) { return "" } }`, name)
}

// dataLikeURL reports whether a response URL matches any data keyword.
func dataLikeURL(u string) bool {
	lower := strings.ToLower(u)
	for _, kw := range dataKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
