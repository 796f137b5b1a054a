package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// heartbeatInterval is how often the realtime socket is kept alive.
var heartbeatInterval = 30 * time.Second

// orderSubscription is a live feed of UPDATE events on the current user's
// orders, delivered over a Phoenix-protocol websocket. writeMu serializes
// all writes to the socket; the websocket library allows only one
// concurrent writer.
type orderSubscription struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	topic     string
	joinRef   string
	events    chan<- types.OrderEvent
	done      chan struct{}
	closeOnce sync.Once
	log       zerolog.Logger
}

var _ types.Subscription = (*orderSubscription)(nil)

// realtimeURL converts the backend base URL to its realtime websocket
// endpoint.
func (c *Client) realtimeURL() string {
	wsURL := c.baseURL
	if strings.HasPrefix(wsURL, "https") {
		wsURL = "wss" + wsURL[len("https"):]
	} else if strings.HasPrefix(wsURL, "http") {
		wsURL = "ws" + wsURL[len("http"):]
	}
	return wsURL + "/realtime/v1/websocket?apikey=" + c.anonKey + "&vsn=1.0.0"
}

// SubscribeOrderUpdates opens a live subscription to status changes on the
// given user's orders. Events are delivered on the provided channel until
// the returned handle is closed. Close stops further delivery; an event
// already in flight is not cancelled.
func (c *Client) SubscribeOrderUpdates(ctx context.Context, userID string, events chan<- types.OrderEvent) (types.Subscription, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.realtimeURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: realtime dial: %v", types.ErrRemote, err)
	}

	sub := &orderSubscription{
		conn:    conn,
		topic:   fmt.Sprintf("realtime:public:%s:user_id=eq.%s", tableOrders, userID),
		joinRef: "1",
		events:  events,
		done:    make(chan struct{}),
		log:     c.log.With().Str("component", "realtime").Logger(),
	}

	join := map[string]any{
		"topic": sub.topic,
		"event": "phx_join",
		"payload": map[string]any{
			"config": map[string]any{
				"postgres_changes": []map[string]string{{
					"event":  "UPDATE",
					"schema": "public",
					"table":  tableOrders,
					"filter": "user_id=eq." + userID,
				}},
			},
		},
		"ref":      sub.joinRef,
		"join_ref": sub.joinRef,
	}
	if err := sub.writeJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: realtime join: %v", types.ErrRemote, err)
	}

	go sub.readLoop()
	go sub.heartbeat()

	sub.log.Debug().Str("topic", sub.topic).Msg("subscribed to order updates")
	return sub, nil
}

// writeJSON sends one frame while holding the write mutex.
func (s *orderSubscription) writeJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

// Close leaves the channel and tears the socket down. Idempotent. No
// events are delivered after Close returns.
func (s *orderSubscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		leave := map[string]any{
			"topic":    s.topic,
			"event":    "phx_leave",
			"payload":  map[string]any{},
			"ref":      "leave",
			"join_ref": s.joinRef,
		}
		// Best effort; the connection may already be gone.
		s.writeJSON(leave)
		s.writeMu.Lock()
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.conn.Close()
		s.writeMu.Unlock()
	})
	return nil
}

// readLoop decodes incoming frames and forwards order updates. Protocol
// frames (join replies, heartbeat acks) and unparseable payloads are
// dropped silently.
func (s *orderSubscription) readLoop() {
	for {
		select {
		case <-s.done:
			return
		default:
		}

		_, message, err := s.conn.ReadMessage()
		if err != nil {
			// Connection closed, by Close or by the server.
			return
		}

		frame := gjson.ParseBytes(message)
		if frame.Get("event").String() != "postgres_changes" {
			continue
		}

		// The changed row rides inside the frame's payload; older servers
		// omit the data envelope.
		record := frame.Get("payload.data.record")
		if !record.Exists() {
			record = frame.Get("payload.record")
		}
		if !record.Exists() {
			continue
		}

		var order types.Order
		if err := json.Unmarshal([]byte(record.Raw), &order); err != nil {
			s.log.Debug().Err(err).Msg("dropping undecodable order update")
			continue
		}

		select {
		case s.events <- types.OrderEvent{Order: order}:
		case <-s.done:
			return
		}
	}
}

// heartbeat keeps the socket alive until the subscription is closed.
func (s *orderSubscription) heartbeat() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 1
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			ref++
			msg := map[string]any{
				"topic":   "phoenix",
				"event":   "heartbeat",
				"payload": map[string]any{},
				"ref":     fmt.Sprintf("%d", ref),
			}
			if err := s.writeJSON(msg); err != nil {
				return
			}
		}
	}
}
