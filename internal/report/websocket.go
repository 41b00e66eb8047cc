package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// WebsocketSink streams records to a collector over a single websocket.
//
// The connection is dialed on first use. Incoming frames are drained in the
// background so that pings from the collector are answered and a close from
// its side is noticed; the next Report after a close or a failed write
// redials. WebsocketSink is safe for concurrent use; writes are serialized.
type WebsocketSink struct {
	url string

	mu   sync.Mutex
	conn *websocket.Conn
	// done is canceled once the peer closes conn or the read side fails.
	done context.Context
}

// NewWebsocketSink creates a sink for the ws:// or wss:// url.
func NewWebsocketSink(url string) *WebsocketSink {
	return &WebsocketSink{url: url}
}

// Report writes r as one JSON text message.
func (s *WebsocketSink) Report(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil && s.done.Err() != nil {
		s.conn.CloseNow()
		s.conn = nil
	}
	if s.conn == nil {
		conn, _, err := websocket.Dial(ctx, s.url, nil)
		if err != nil {
			return fmt.Errorf("dial %s: %w", s.url, err)
		}
		// The collector never sends data messages.
		s.done = conn.CloseRead(context.Background())
		s.conn = conn
	}

	if err := wsjson.Write(ctx, s.conn, r); err != nil {
		s.conn.CloseNow()
		s.conn = nil
		return fmt.Errorf("write to %s: %w", s.url, err)
	}
	return nil
}

// Close closes the connection, if one is open.
func (s *WebsocketSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	if s.done.Err() != nil {
		s.conn.CloseNow()
		s.conn = nil
		return nil
	}
	err := s.conn.Close(websocket.StatusNormalClosure, "")
	s.conn = nil
	return err
}
