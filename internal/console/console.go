package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/DoyleJ11/duel-room-client/internal/board"
)

var ErrQuit = errors.New("quit")

// Controller is the part of the room client the console drives.
type Controller interface {
	SendChat(ctx context.Context) error
	ProposeProblem(ctx context.Context) error
	ProposeDelete(ctx context.Context, pid string) error
	AcceptProposal(ctx context.Context, pid string) error
	RejectProposal(ctx context.Context, pid string) error
	AcceptDelete(ctx context.Context, pid string) error
	RejectDelete(ctx context.Context, pid string) error
	Leave(ctx context.Context) error
}

type CommandType string

const (
	CmdChat         CommandType = "chat"
	CmdUser         CommandType = "user"
	CmdPropose      CommandType = "propose"
	CmdDelete       CommandType = "delete"
	CmdAccept       CommandType = "accept"
	CmdReject       CommandType = "reject"
	CmdAcceptDelete CommandType = "accept-delete"
	CmdRejectDelete CommandType = "reject-delete"
	CmdLeave        CommandType = "leave"
	CmdQuit         CommandType = "quit"
)

type Command struct {
	Type CommandType
	Arg  string
}

// Parse maps one input line to a command. Lines that do not start with a
// slash are chat text.
func Parse(line string) (Command, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "/") {
		return Command{Type: CmdChat, Arg: line}, true
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch CommandType(name) {
	case CmdUser, CmdPropose, CmdDelete, CmdAccept, CmdReject, CmdAcceptDelete, CmdRejectDelete:
		return Command{Type: CommandType(name), Arg: arg}, true
	case CmdLeave, CmdQuit:
		return Command{Type: CommandType(name)}, true
	default:
		return Command{}, false
	}
}

type Console struct {
	ctrl Controller
	form *board.Form
	out  io.Writer
	log  *zap.Logger
}

func New(ctrl Controller, form *board.Form, out io.Writer, log *zap.Logger) *Console {
	return &Console{ctrl: ctrl, form: form, out: out, log: log}
}

// Run reads commands from in until EOF, /quit or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			err := c.Exec(ctx, line)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				c.log.Debug("command failed", zap.String("line", line), zap.Error(err))
			}
		}
	}
}

func (c *Console) Exec(ctx context.Context, line string) error {
	cmd, ok := Parse(line)
	if !ok {
		fmt.Fprintf(c.out, "unknown command %q\n", line)
		return nil
	}

	switch cmd.Type {
	case CmdChat:
		c.form.Set(board.FieldText, cmd.Arg)
		return c.ctrl.SendChat(ctx)
	case CmdUser:
		c.form.Set(board.FieldUser, cmd.Arg)
		return nil
	case CmdPropose:
		c.form.Set(board.FieldPid, cmd.Arg)
		return c.ctrl.ProposeProblem(ctx)
	case CmdDelete:
		return c.ctrl.ProposeDelete(ctx, cmd.Arg)
	case CmdAccept:
		return c.ctrl.AcceptProposal(ctx, cmd.Arg)
	case CmdReject:
		return c.ctrl.RejectProposal(ctx, cmd.Arg)
	case CmdAcceptDelete:
		return c.ctrl.AcceptDelete(ctx, cmd.Arg)
	case CmdRejectDelete:
		return c.ctrl.RejectDelete(ctx, cmd.Arg)
	case CmdLeave:
		return c.ctrl.Leave(ctx)
	case CmdQuit:
		return ErrQuit
	}
	return nil
}

// Redraw repaints b on out every time it changes, until ctx is done.
func Redraw(ctx context.Context, b *board.Board, out io.Writer, tail int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.Changed():
			if _, err := io.WriteString(out, "\033[H\033[2J"); err != nil {
				return err
			}
			if err := b.Render(out, tail); err != nil {
				return err
			}
		}
	}
}
