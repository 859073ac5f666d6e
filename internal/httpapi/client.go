package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/duel-room-client/pkg/types"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Route  string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Route, e.Status, e.Body)
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient talks to baseURL (scheme://host). A nil hc uses a client with
// no timeout, matching the page's fetch.
func NewClient(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, log: log}
}

func (c *Client) Propose(ctx context.Context, req types.ProposeRequest) error {
	return c.post(ctx, RoutePropose, req)
}

func (c *Client) ProposeDelete(ctx context.Context, req types.ProposeRequest) error {
	return c.post(ctx, RouteProposeDelete, req)
}

func (c *Client) AcceptProposal(ctx context.Context, req types.RoomActionRequest) error {
	return c.post(ctx, RouteAcceptProposal, req)
}

func (c *Client) RejectProposal(ctx context.Context, req types.RoomActionRequest) error {
	return c.post(ctx, RouteRejectProposal, req)
}

func (c *Client) AcceptDelete(ctx context.Context, req types.RoomActionRequest) error {
	return c.post(ctx, RouteAcceptDelete, req)
}

func (c *Client) RejectDelete(ctx context.Context, req types.RoomActionRequest) error {
	return c.post(ctx, RouteRejectDelete, req)
}

func (c *Client) Leave(ctx context.Context, req types.RoomActionRequest) error {
	return c.post(ctx, RouteLeave, req)
}

func (c *Client) post(ctx context.Context, route string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s body: %w", route, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", route, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", route, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Route: route, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.log.Debug("posted", zap.String("route", route), zap.String("request_id", reqID), zap.Int("status", resp.StatusCode))
	return nil
}
