package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"eua-price-lab/internal/domain"
)

// StreamSource reads candidate payloads from a live websocket feed for a
// bounded window. The span argument does not apply to a live feed and is
// ignored.
type StreamSource struct {
	name        string
	endpoint    string
	readWindow  time.Duration
	maxMessages int
}

// StreamOptions configures a StreamSource.
type StreamOptions struct {
	Name        string
	Endpoint    string
	ReadWindow  time.Duration // how long to listen per Fetch
	MaxMessages int           // stop early after this many payloads
}

// NewStreamSource creates a websocket source.
func NewStreamSource(opts StreamOptions) *StreamSource {
	if opts.ReadWindow <= 0 {
		opts.ReadWindow = 10 * time.Second
	}
	if opts.MaxMessages <= 0 {
		opts.MaxMessages = 100
	}
	return &StreamSource{
		name:        opts.Name,
		endpoint:    opts.Endpoint,
		readWindow:  opts.ReadWindow,
		maxMessages: opts.MaxMessages,
	}
}

var _ Source = (*StreamSource)(nil)

func (s *StreamSource) Name() string { return s.name }

// Fetch connects, reads JSON messages until the window closes or the
// message cap is hit, and returns the decoded payloads. Messages that are
// not JSON are dropped.
func (s *StreamSource) Fetch(ctx context.Context, _ int) ([]domain.RawCandidate, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: websocket dial: %w", s.name, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(s.readWindow)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%s: set read deadline: %w", s.name, err)
	}

	var candidates []domain.RawCandidate
	for len(candidates) < s.maxMessages {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			// The deadline closing the window is the normal exit.
			break
		}
		var doc any
		if json.Unmarshal(msg, &doc) != nil {
			continue
		}
		candidates = append(candidates, doc)
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

	return candidates, nil
}
