package roomclient

import (
	"context"

	"go.uber.org/zap"

	"github.com/DoyleJ11/duel-room-client/internal/board"
	"github.com/DoyleJ11/duel-room-client/pkg/types"
)

type actionKind string

const (
	actionProposeDelete  actionKind = "propose_delete"
	actionAcceptProposal actionKind = "accept_proposal"
	actionRejectProposal actionKind = "reject_proposal"
	actionAcceptDelete   actionKind = "accept_delete"
	actionRejectDelete   actionKind = "reject_delete"
	actionLeave          actionKind = "leave"
)

type actionMsg struct {
	kind  actionKind
	pid   string
	reply chan struct{}
}

func (actionMsg) isClientMsg() {}

// SendChat emits the user and text fields as a chat message and clears the
// text field. If either field is empty nothing happens.
func (c *Client) SendChat(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case c.inbox <- chatMsg{reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return context.Canceled
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return context.Canceled
	}
}

// ProposeProblem posts the pid field to /api/propose. It returns once the
// request is issued; the response is never looked at.
func (c *Client) ProposeProblem(ctx context.Context) error {
	reply := make(chan struct{})
	return c.call(ctx, proposeMsg{reply: reply}, reply)
}

func (c *Client) ProposeDelete(ctx context.Context, pid string) error {
	return c.action(ctx, actionProposeDelete, pid)
}

func (c *Client) AcceptProposal(ctx context.Context, pid string) error {
	return c.action(ctx, actionAcceptProposal, pid)
}

func (c *Client) RejectProposal(ctx context.Context, pid string) error {
	return c.action(ctx, actionRejectProposal, pid)
}

func (c *Client) AcceptDelete(ctx context.Context, pid string) error {
	return c.action(ctx, actionAcceptDelete, pid)
}

func (c *Client) RejectDelete(ctx context.Context, pid string) error {
	return c.action(ctx, actionRejectDelete, pid)
}

func (c *Client) Leave(ctx context.Context) error {
	return c.action(ctx, actionLeave, "")
}

func (c *Client) action(ctx context.Context, kind actionKind, pid string) error {
	reply := make(chan struct{})
	return c.call(ctx, actionMsg{kind: kind, pid: pid, reply: reply}, reply)
}

// loop side

func (c *Client) sendChat() error {
	user := c.form.Value(board.FieldUser)
	text := c.form.Value(board.FieldText)
	if user == "" || text == "" {
		return nil
	}

	err := c.ch.Emit(c.ctx, types.EventChat, types.Chat{
		RoomID: c.sess.RoomID,
		Team:   c.sess.Team,
		User:   user,
		Text:   text,
	})
	if err != nil {
		return err
	}
	c.form.Clear(board.FieldText)
	return nil
}

func (c *Client) proposeProblem() {
	pid := c.form.Value(board.FieldPid)
	if pid == "" {
		return
	}
	req := types.ProposeRequest{RoomID: c.sess.RoomID, Pid: pid, Team: c.sess.Team}
	c.fire("propose", func(ctx context.Context) error { return c.api.Propose(ctx, req) })
}

func (c *Client) roomAction(a actionMsg) {
	if a.pid == "" && a.kind != actionLeave {
		return
	}
	act := types.RoomActionRequest{RoomID: c.sess.RoomID, Pid: a.pid}

	var do func(ctx context.Context) error
	switch a.kind {
	case actionProposeDelete:
		req := types.ProposeRequest{RoomID: c.sess.RoomID, Pid: a.pid, Team: c.sess.Team}
		do = func(ctx context.Context) error { return c.api.ProposeDelete(ctx, req) }
	case actionAcceptProposal:
		do = func(ctx context.Context) error { return c.api.AcceptProposal(ctx, act) }
	case actionRejectProposal:
		do = func(ctx context.Context) error { return c.api.RejectProposal(ctx, act) }
	case actionAcceptDelete:
		do = func(ctx context.Context) error { return c.api.AcceptDelete(ctx, act) }
	case actionRejectDelete:
		do = func(ctx context.Context) error { return c.api.RejectDelete(ctx, act) }
	case actionLeave:
		do = func(ctx context.Context) error { return c.api.Leave(ctx, act) }
	default:
		return
	}
	c.fire(string(a.kind), do)
}

// fire runs do in the background. Failures are logged, never surfaced.
func (c *Client) fire(name string, do func(ctx context.Context) error) {
	c.requests.Add(1)
	go func() {
		defer c.requests.Done()
		if err := do(c.ctx); err != nil {
			c.log.Debug("request failed", zap.String("request", name), zap.Error(err))
		}
	}()
}
