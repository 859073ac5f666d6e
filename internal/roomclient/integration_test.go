package roomclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/duel-room-client/internal/board"
	"github.com/DoyleJ11/duel-room-client/internal/httpapi"
	"github.com/DoyleJ11/duel-room-client/internal/notify"
	"github.com/DoyleJ11/duel-room-client/internal/roomclient"
	"github.com/DoyleJ11/duel-room-client/internal/session"
	"github.com/DoyleJ11/duel-room-client/internal/transport"
	"github.com/DoyleJ11/duel-room-client/pkg/types"
)

// roomServer answers join_room with a welcome, an update and echoes chat
// back as a message, the way the room server does.
type roomServer struct {
	mu        sync.Mutex
	fromConn  []types.Envelope
	proposals []types.ProposeRequest
}

func (s *roomServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.socket)
	r.Post(httpapi.RoutePropose, func(w http.ResponseWriter, r *http.Request) {
		var req types.ProposeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.proposals = append(s.proposals, req)
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	return r
}

func (s *roomServer) socket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")
	ctx := r.Context()

	send := func(event string, data any) {
		env, _ := types.NewEnvelope(event, data)
		b, _ := json.Marshal(env)
		_ = conn.Write(ctx, websocket.MessageText, b)
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var env types.Envelope
		_ = json.Unmarshal(data, &env)
		s.mu.Lock()
		s.fromConn = append(s.fromConn, env)
		s.mu.Unlock()

		switch env.Event {
		case types.EventJoinRoom:
			var j types.JoinRoom
			_ = json.Unmarshal(env.Data, &j)
			send(types.EventMessage, types.ChatMessage{User: "系统", Time: "10:00:00", Text: "欢迎 " + j.Team + " 队员加入!"})
			send(types.EventUpdate, types.RoomStatus{
				Scores:   &types.Scores{Team1: 0, Team2: 100},
				Solved:   []string{"P1000"},
				Problems: []string{"P1000", "P1001"},
			})
		case types.EventChat:
			var c types.Chat
			_ = json.Unmarshal(env.Data, &c)
			send(types.EventMessage, types.ChatMessage{User: c.User, Time: "10:00:05", Text: c.Text})
			send(types.EventGameOver, types.GameOverEvent{Winner: c.Team})
		}
	}
}

func (s *roomServer) snapshot() ([]types.Envelope, []types.ProposeRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Envelope(nil), s.fromConn...), append([]types.ProposeRequest(nil), s.proposals...)
}

func TestRoomClient_EndToEnd(t *testing.T) {
	srv := &roomServer{}
	hs := httptest.NewServer(srv.routes())
	defer hs.Close()

	store := session.NewMemoryStore()
	require.NoError(t, session.SetTeam(store, "team2"))
	sess, err := session.Load(hs.URL+"/room/ab12cd34", store)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL, err := transport.SocketURL(sess.BaseURL, "/ws")
	require.NoError(t, err)
	conn, err := transport.Dial(ctx, wsURL, zap.NewNop())
	require.NoError(t, err)
	defer conn.Close()

	view := board.New()
	form := board.NewForm()
	var bell bytes.Buffer
	notifier := notify.NewTerminal(&bell, notify.PermissionGranted)
	notifier.RequestPermission(ctx)

	client := roomclient.New(ctx, roomclient.Deps{
		Session:  sess,
		Channel:  conn,
		View:     view,
		Form:     form,
		Notifier: notifier,
		API:      httpapi.NewClient(sess.BaseURL, hs.Client(), zap.NewNop()),
		Logger:   zap.NewNop(),
	})
	require.NoError(t, client.Start(ctx))

	runErr := make(chan error, 1)
	go func() { runErr <- conn.Run(ctx) }()

	require.Eventually(t, func() bool {
		s := view.Snapshot()
		return s.Score2 == "100" && len(s.Messages) == 1
	}, 3*time.Second, 10*time.Millisecond)

	s := view.Snapshot()
	assert.Equal(t, "P1000", s.Solved)
	assert.Equal(t, []string{"P1000", "P1001"}, s.Problems)
	assert.Equal(t, "系统 (10:00:00): 欢迎 team2 队员加入!", s.Messages[0])
	assert.False(t, s.WinnerVisible)

	form.Set(board.FieldUser, "bob")
	form.Set(board.FieldText, "gg")
	require.NoError(t, client.SendChat(ctx))
	assert.Empty(t, form.Value(board.FieldText))

	require.Eventually(t, func() bool { return view.Snapshot().WinnerVisible }, 3*time.Second, 10*time.Millisecond)
	s = view.Snapshot()
	assert.Equal(t, "🏆 team2 获胜！", s.Winner)
	assert.Equal(t, "bob (10:00:05): gg", s.Messages[1])
	assert.Equal(t, 2, s.ScrollTop)

	form.Set(board.FieldPid, "P1002")
	require.NoError(t, client.ProposeProblem(ctx))
	require.Eventually(t, func() bool {
		_, props := srv.snapshot()
		return len(props) == 1
	}, 3*time.Second, 10*time.Millisecond)

	frames, props := srv.snapshot()
	assert.Equal(t, types.ProposeRequest{RoomID: "ab12cd34", Pid: "P1002", Team: "team2"}, props[0])
	require.Len(t, frames, 2)
	assert.Equal(t, types.EventJoinRoom, frames[0].Event)
	assert.Equal(t, types.EventChat, frames[1].Event)

	client.Close()
	assert.Contains(t, bell.String(), "[新消息] bob: gg")

	cancel()
	select {
	case <-runErr:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
