package types

import "encoding/json"

// Client -> Server
// join_room:
//   room_id: string
//   team: "team1" | "team2"
//
// chat:
//   room_id: string
//   team: string
//   user: string
//   text: string   // "!propose <pid>" and "!delete <pid>" are interpreted by the server
//
// Server -> Client
// update:    see RoomStatus in snapshot.go
// game_over: { winner: string }
// message:   { user: string, time: "HH:MM:SS", text: string }
// proposal | proposal_request | deletion_request | deletion_proposal:
//   { proposer: string, pid: string, timestamp?: string }

// Envelope is one frame on the real-time channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	EventJoinRoom = "join_room"
	EventChat     = "chat"

	EventUpdate           = "update"
	EventGameOver         = "game_over"
	EventMessage          = "message"
	EventProposal         = "proposal"
	EventProposalRequest  = "proposal_request"
	EventDeletionRequest  = "deletion_request"
	EventDeletionProposal = "deletion_proposal"
)

// InboundEvents lists every server event the client subscribes to.
var InboundEvents = []string{
	EventUpdate,
	EventGameOver,
	EventMessage,
	EventProposal,
	EventProposalRequest,
	EventDeletionRequest,
	EventDeletionProposal,
}

type JoinRoom struct {
	RoomID string `json:"room_id"`
	Team   string `json:"team"`
}

type Chat struct {
	RoomID string `json:"room_id"`
	Team   string `json:"team"`
	User   string `json:"user"`
	Text   string `json:"text"`
}

// ProposeRequest is the body of POST /api/propose and /api/propose_delete.
type ProposeRequest struct {
	RoomID string `json:"room_id"`
	Pid    string `json:"pid"`
	Team   string `json:"team"`
}

// RoomActionRequest is the body of the accept/reject endpoints and /api/leave (Pid empty).
type RoomActionRequest struct {
	RoomID string `json:"room_id"`
	Pid    string `json:"pid,omitempty"`
}
