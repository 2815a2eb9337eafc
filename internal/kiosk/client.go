package kiosk

import (
	"context"
	"log"
	"time"

	"github.com/fasthttp/websocket"

	"backend-turnero/internal/realtime"
)

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 15 * time.Second
)

// Client - Streams board_update messages from /ws/board and reconnects
// with exponential backoff until ctx ends.
type Client struct {
	url    string
	dialer *websocket.Dialer
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
		},
	}
}

// Run - Blocks until ctx is done. onBoard receives every decoded message,
// onState reports connection changes (nil error means connected).
func (c *Client) Run(ctx context.Context, onBoard func(realtime.BoardMessage), onState func(error)) {
	backoff := minBackoff
	for {
		err := c.stream(ctx, onBoard, func() {
			backoff = minBackoff
			onState(nil)
		})
		if ctx.Err() != nil {
			return
		}

		log.Printf("[kiosk] connection lost: %v, retrying in %s", err, backoff)
		onState(err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) stream(ctx context.Context, onBoard func(realtime.BoardMessage), connected func()) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	connected()

	// Unblock ReadJSON when ctx ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg realtime.BoardMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}
		if msg.Type != realtime.MessageBoardUpdate {
			continue
		}
		onBoard(msg)
	}
}
