package types

// Inbound is any validated server event.
type Inbound interface{ isInbound() }

type Scores struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

type Solver struct {
	User string `json:"user"`
	Team string `json:"team"`
}

type Proposal struct {
	Proposer  string `json:"proposer"`
	Pid       string `json:"pid"`
	Status    string `json:"status"` // "pending" | "accepted" | "rejected"
	Timestamp string `json:"timestamp"`
}

// RoomStatus is the full room state carried by every update event.
// It replaces whatever the client displayed before; there is no merge.
type RoomStatus struct {
	RoomID            string              `json:"room_id,omitempty"`
	Problems          []string            `json:"problems,omitempty"`
	Teams             map[string][]string `json:"teams,omitempty"`
	Scores            *Scores             `json:"scores"`
	Solved            []string            `json:"solved"`
	SolvedBy          map[string]Solver   `json:"solved_by,omitempty"`
	Finished          bool                `json:"finished"`
	Winner            string              `json:"winner"`
	Proposals         []Proposal          `json:"proposals,omitempty"`
	DeletionProposals []Proposal          `json:"deletion_proposals,omitempty"`
}

type UpdateEvent struct {
	RoomStatus
}

type GameOverEvent struct {
	Winner string `json:"winner"`
}

type ChatMessage struct {
	User string `json:"user"`
	Time string `json:"time"`
	Text string `json:"text"`
}

// ProposalEvent covers proposal, proposal_request, deletion_request and
// deletion_proposal; Kind holds the event name it arrived under.
type ProposalEvent struct {
	Kind      string `json:"-"`
	Proposer  string `json:"proposer"`
	Pid       string `json:"pid"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (UpdateEvent) isInbound()   {}
func (GameOverEvent) isInbound() {}
func (ChatMessage) isInbound()   {}
func (ProposalEvent) isInbound() {}

// Deletion reports whether the proposal asks to remove a problem.
func (p ProposalEvent) Deletion() bool {
	return p.Kind == EventDeletionRequest || p.Kind == EventDeletionProposal
}
