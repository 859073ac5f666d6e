package board

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/DoyleJ11/duel-room-client/pkg/types"
)

// Board is the terminal counterpart of the room page: two score labels,
// the solved list, a hidden-until-won banner and the chat log.
type Board struct {
	mu sync.RWMutex

	score1        string
	score2        string
	solved        string
	winner        string
	winnerVisible bool
	messages      []string
	scrollTop     int

	problems  []string
	teams     map[string][]string
	proposals []types.Proposal
	deletions []types.Proposal

	changed chan struct{}
}

func New() *Board {
	return &Board{changed: make(chan struct{}, 1)}
}

// Changed fires (coalesced) after any mutation.
func (b *Board) Changed() <-chan struct{} { return b.changed }

func (b *Board) notify() {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

func (b *Board) SetScores(team1, team2 int) {
	b.mu.Lock()
	b.score1 = fmt.Sprint(team1)
	b.score2 = fmt.Sprint(team2)
	b.mu.Unlock()
	b.notify()
}

func (b *Board) SetSolved(solved string) {
	b.mu.Lock()
	b.solved = solved
	b.mu.Unlock()
	b.notify()
}

func (b *Board) ShowWinner(banner string) {
	b.mu.Lock()
	b.winner = banner
	b.winnerVisible = true
	b.mu.Unlock()
	b.notify()
}

// AppendMessage adds one line to the log and scrolls to the bottom.
func (b *Board) AppendMessage(line string) {
	b.mu.Lock()
	b.messages = append(b.messages, line)
	b.scrollTop = len(b.messages)
	b.mu.Unlock()
	b.notify()
}

func (b *Board) SetProblems(problems []string) {
	b.mu.Lock()
	b.problems = append([]string(nil), problems...)
	b.mu.Unlock()
	b.notify()
}

func (b *Board) SetTeams(teams map[string][]string) {
	b.mu.Lock()
	b.teams = make(map[string][]string, len(teams))
	for k, v := range teams {
		b.teams[k] = append([]string(nil), v...)
	}
	b.mu.Unlock()
	b.notify()
}

func (b *Board) SetProposals(additions, deletions []types.Proposal) {
	b.mu.Lock()
	b.proposals = pending(additions)
	b.deletions = pending(deletions)
	b.mu.Unlock()
	b.notify()
}

func pending(ps []types.Proposal) []types.Proposal {
	var out []types.Proposal
	for _, p := range ps {
		if p.Status == "" || p.Status == "pending" {
			out = append(out, p)
		}
	}
	return out
}

// Snapshot is a copy of what the board currently shows.
type Snapshot struct {
	Score1        string
	Score2        string
	Solved        string
	Winner        string
	WinnerVisible bool
	Messages      []string
	ScrollTop     int
	Problems      []string
	Teams         map[string][]string
	Proposals     []types.Proposal
	Deletions     []types.Proposal
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		Score1:        b.score1,
		Score2:        b.score2,
		Solved:        b.solved,
		Winner:        b.winner,
		WinnerVisible: b.winnerVisible,
		Messages:      append([]string(nil), b.messages...),
		ScrollTop:     b.scrollTop,
		Problems:      append([]string(nil), b.problems...),
		Teams:         b.teams,
		Proposals:     append([]types.Proposal(nil), b.proposals...),
		Deletions:     append([]types.Proposal(nil), b.deletions...),
	}
}

// Render draws the board. tail limits how many log lines end at the scroll
// position; zero means all.
func (b *Board) Render(w io.Writer, tail int) error {
	s := b.Snapshot()

	var sb strings.Builder
	fmt.Fprintf(&sb, "team1 %s : %s team2\n", orDash(s.Score1), orDash(s.Score2))
	fmt.Fprintf(&sb, "solved: %s\n", s.Solved)
	if len(s.Problems) > 0 {
		fmt.Fprintf(&sb, "problems: %s\n", strings.Join(s.Problems, ", "))
	}
	for _, team := range []string{"team1", "team2"} {
		if members, ok := s.Teams[team]; ok {
			fmt.Fprintf(&sb, "%s: %s\n", team, strings.Join(members, ", "))
		}
	}
	for _, p := range s.Proposals {
		fmt.Fprintf(&sb, "+ %s (%s)\n", p.Pid, p.Proposer)
	}
	for _, p := range s.Deletions {
		fmt.Fprintf(&sb, "- %s (%s)\n", p.Pid, p.Proposer)
	}
	if s.WinnerVisible {
		fmt.Fprintf(&sb, "%s\n", s.Winner)
	}

	start := 0
	if tail > 0 && s.ScrollTop > tail {
		start = s.ScrollTop - tail
	}
	for _, line := range s.Messages[start:s.ScrollTop] {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
