package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"IndexPulse/internal/domain/models"
	drepo "IndexPulse/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements IndicatorStream over the market-data backend's WebSocket.
// The backend pushes two frame types: per-symbol indicator snapshots and
// session status changes.
type Client struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new indicator feed stream.
func New(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration) drepo.IndicatorStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("feed connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("feed: connected")
	return nil
}

// Subscribe subscribes to configured symbols.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("feed not connected")
	}
	for _, s := range c.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": s}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
		log.Printf("feed: subscribed %s", s)
	}
	return nil
}

type feedFrame struct {
	Type   string                 `json:"type"`
	Status string                 `json:"status,omitempty"`
	Data   *models.SnapshotMessage `json:"data,omitempty"`
}

// Read streams sanitized snapshots, session status changes and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.IndicatorSnapshot, <-chan models.MarketStatus, <-chan error) {
	snaps := make(chan *models.IndicatorSnapshot, 1024)
	statuses := make(chan models.MarketStatus, 16)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(snaps)
		defer close(statuses)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("feed conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("feed read: %w", err)
					return
				}
				var frame feedFrame
				if err := json.Unmarshal(b, &frame); err != nil {
					// ignore unrecognized frames
					continue
				}
				switch frame.Type {
				case "snapshot":
					if frame.Data == nil {
						continue
					}
					select {
					case snaps <- frame.Data.ToSnapshot():
					default:
						// drop on backpressure; the next frame supersedes anyway
					}
				case "status":
					select {
					case statuses <- models.NormalizeMarketStatus(frame.Status):
					default:
					}
				}
			}
		}
	}()

	return snaps, statuses, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
