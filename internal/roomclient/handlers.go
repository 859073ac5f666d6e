package roomclient

import (
	"fmt"
	"strings"

	"github.com/DoyleJ11/duel-room-client/internal/notify"
	"github.com/DoyleJ11/duel-room-client/pkg/types"
)

const notificationTitle = "新消息"

// WinnerBanner is the text shown when a team wins.
func WinnerBanner(winner string) string {
	return fmt.Sprintf("🏆 %s 获胜！", winner)
}

// MessageLine formats one chat log entry.
func MessageLine(m types.ChatMessage) string {
	return fmt.Sprintf("%s (%s): %s", m.User, m.Time, m.Text)
}

func (c *Client) handle(ev types.Inbound) {
	switch e := ev.(type) {
	case types.UpdateEvent:
		c.onUpdate(e)
	case types.GameOverEvent:
		c.view.ShowWinner(WinnerBanner(e.Winner))
	case types.ChatMessage:
		c.onMessage(e)
	case types.ProposalEvent:
		c.view.AppendMessage(proposalLine(e))
	}
}

// onUpdate replaces what is shown; nothing from earlier updates is kept.
func (c *Client) onUpdate(e types.UpdateEvent) {
	c.view.SetScores(e.Scores.Team1, e.Scores.Team2)
	c.view.SetSolved(strings.Join(e.Solved, ", "))
	if e.Finished {
		c.view.ShowWinner(WinnerBanner(e.Winner))
	}

	if rv, ok := c.view.(RosterView); ok {
		rv.SetProblems(e.Problems)
		rv.SetTeams(e.Teams)
		rv.SetProposals(e.Proposals, e.DeletionProposals)
	}
}

func (c *Client) onMessage(m types.ChatMessage) {
	c.view.AppendMessage(MessageLine(m))

	if c.notifier != nil && c.notifier.Permission() == notify.PermissionGranted {
		c.notifier.Notify(notificationTitle, m.User+": "+m.Text)
	}
}

func proposalLine(p types.ProposalEvent) string {
	verb := "申请添加题目"
	if p.Deletion() {
		verb = "申请删除题目"
	}
	if p.Timestamp == "" {
		return fmt.Sprintf("系统: %s %s %s", p.Proposer, verb, p.Pid)
	}
	return fmt.Sprintf("系统 (%s): %s %s %s", p.Timestamp, p.Proposer, verb, p.Pid)
}
