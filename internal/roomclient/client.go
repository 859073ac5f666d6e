package roomclient

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/DoyleJ11/duel-room-client/internal/board"
	"github.com/DoyleJ11/duel-room-client/internal/notify"
	"github.com/DoyleJ11/duel-room-client/internal/session"
	"github.com/DoyleJ11/duel-room-client/pkg/types"
)

// Channel is the real-time connection to the room server.
type Channel interface {
	On(event string, h func(types.Envelope))
	Emit(ctx context.Context, event string, payload any) error
}

// View is what the client draws on.
type View interface {
	SetScores(team1, team2 int)
	SetSolved(solved string)
	ShowWinner(banner string)
	AppendMessage(line string)
}

// RosterView is optional; views that implement it also get problems,
// team members and pending proposals from every update.
type RosterView interface {
	SetProblems(problems []string)
	SetTeams(teams map[string][]string)
	SetProposals(additions, deletions []types.Proposal)
}

// Form is the set of input fields the user types into.
type Form interface {
	Value(field board.Field) string
	Clear(field board.Field)
}

type Notifier interface {
	RequestPermission(ctx context.Context) notify.Permission
	Permission() notify.Permission
	Notify(title, body string)
}

// API is the room server's REST surface.
type API interface {
	Propose(ctx context.Context, req types.ProposeRequest) error
	ProposeDelete(ctx context.Context, req types.ProposeRequest) error
	AcceptProposal(ctx context.Context, req types.RoomActionRequest) error
	RejectProposal(ctx context.Context, req types.RoomActionRequest) error
	AcceptDelete(ctx context.Context, req types.RoomActionRequest) error
	RejectDelete(ctx context.Context, req types.RoomActionRequest) error
	Leave(ctx context.Context, req types.RoomActionRequest) error
}

type Deps struct {
	Session  session.Config
	Channel  Channel
	View     View
	Form     Form
	Notifier Notifier
	API      API
	Logger   *zap.Logger
}

type Msg interface{ isClientMsg() }

type fromServer struct{ env types.Envelope }

type chatMsg struct{ reply chan error }

type proposeMsg struct{ reply chan struct{} }

// barrier lets callers wait until everything queued before it was handled.
type barrier struct{ reply chan struct{} }

type shutdown struct{}

func (fromServer) isClientMsg() {}
func (chatMsg) isClientMsg()    {}
func (proposeMsg) isClientMsg() {}
func (barrier) isClientMsg()    {}
func (shutdown) isClientMsg()   {}

// Client is the room page controller. All view and form access happens on
// one loop goroutine, so handlers run one at a time and to completion.
type Client struct {
	sess     session.Config
	ch       Channel
	view     View
	form     Form
	notifier Notifier
	api      API
	log      *zap.Logger

	inbox  chan Msg
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// in-flight fire-and-forget requests
	requests sync.WaitGroup
}

func New(parent context.Context, d Deps) *Client {
	ctx, cancel := context.WithCancel(parent)
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		sess:     d.Session,
		ch:       d.Channel,
		view:     d.View,
		form:     d.Form,
		notifier: d.Notifier,
		api:      d.API,
		log:      log.With(zap.String("room_id", d.Session.RoomID), zap.String("team", d.Session.Team)),
		inbox:    make(chan Msg, 64),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go c.loop()
	return c
}

// Start asks for notification permission without waiting on it, subscribes
// to every server event and announces the client with join_room.
func (c *Client) Start(ctx context.Context) error {
	if c.notifier != nil {
		go c.notifier.RequestPermission(c.ctx)
	}

	for _, event := range types.InboundEvents {
		c.ch.On(event, c.deliver)
	}

	return c.ch.Emit(ctx, types.EventJoinRoom, types.JoinRoom{RoomID: c.sess.RoomID, Team: c.sess.Team})
}

// deliver runs on the transport goroutine; it only queues.
func (c *Client) deliver(env types.Envelope) {
	select {
	case c.inbox <- fromServer{env: env}:
	case <-c.ctx.Done():
	}
}

func (c *Client) loop() {
	defer close(c.done)
	for {
		select {
		case <-c.ctx.Done():
			return

		case m := <-c.inbox:
			switch msg := m.(type) {
			case fromServer:
				ev, err := types.Decode(msg.env)
				if err != nil {
					c.log.Debug("dropping event", zap.String("event", msg.env.Event), zap.Error(err))
					break
				}
				c.handle(ev)

			case chatMsg:
				msg.reply <- c.sendChat()

			case proposeMsg:
				c.proposeProblem()
				close(msg.reply)

			case actionMsg:
				c.roomAction(msg)
				close(msg.reply)

			case barrier:
				close(msg.reply)

			case shutdown:
				c.cancel()
				return
			}
		}
	}
}

// Close stops the loop and waits for in-flight requests.
func (c *Client) Close() {
	select {
	case c.inbox <- shutdown{}:
	case <-c.ctx.Done():
	}
	<-c.done
	c.cancel()
	c.requests.Wait()
}

func (c *Client) Done() <-chan struct{} { return c.done }

// call queues m and waits for wait to fire.
func (c *Client) call(ctx context.Context, m Msg, wait <-chan struct{}) error {
	select {
	case c.inbox <- m:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return context.Canceled
	}
	select {
	case <-wait:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return context.Canceled
	}
}

func (c *Client) sync(ctx context.Context) error {
	reply := make(chan struct{})
	return c.call(ctx, barrier{reply: reply}, reply)
}
