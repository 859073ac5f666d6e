package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/duel-room-client/pkg/types"
)

const maxFrameSize = 1 << 20

type Handler = func(types.Envelope)

// Conn is one real-time connection to a room server. Subscriptions are
// permanent; there is no reconnect once the socket drops.
type Conn struct {
	ID   string
	conn *websocket.Conn
	log  *zap.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler

	ended atomic.Bool
}

// SocketURL maps the page base URL (http/https) to the websocket endpoint.
func SocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = path
	return u.String(), nil
}

func Dial(ctx context.Context, socketURL string, log *zap.Logger) (*Conn, error) {
	ws, _, err := websocket.Dial(ctx, socketURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", socketURL, err)
	}
	ws.SetReadLimit(maxFrameSize)

	id := uuid.NewString()
	return &Conn{
		ID:       id,
		conn:     ws,
		log:      log.With(zap.String("conn_id", id)),
		handlers: make(map[string][]Handler),
	}, nil
}

// On subscribes h to event. Handlers run on the Run goroutine.
func (c *Conn) On(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], h)
}

func (c *Conn) Emit(ctx context.Context, event string, payload any) error {
	env, err := types.NewEnvelope(event, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	c.log.Debug("emitted", zap.String("event", event))
	return nil
}

// Run reads frames until the connection ends. A normal close returns nil.
func (c *Conn) Run(ctx context.Context) error {
	defer c.ended.Store(true)
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				c.log.Info("connection closed by server")
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}

		var env types.Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
			c.log.Warn("dropping malformed frame", zap.Int("bytes", len(data)), zap.Error(err))
			continue
		}
		c.dispatch(env)
	}
}

func (c *Conn) dispatch(env types.Envelope) {
	c.mu.RLock()
	hs := append([]Handler(nil), c.handlers[env.Event]...)
	c.mu.RUnlock()

	if len(hs) == 0 {
		c.log.Debug("no subscriber", zap.String("event", env.Event))
		return
	}
	for _, h := range hs {
		h(env)
	}
}

// Close is a no-op once Run has returned.
func (c *Conn) Close() error {
	if c.ended.Load() {
		return nil
	}
	err := c.conn.Close(websocket.StatusNormalClosure, "bye")
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
