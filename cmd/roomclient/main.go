package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/duel-room-client/internal/board"
	"github.com/DoyleJ11/duel-room-client/internal/config"
	"github.com/DoyleJ11/duel-room-client/internal/console"
	"github.com/DoyleJ11/duel-room-client/internal/httpapi"
	"github.com/DoyleJ11/duel-room-client/internal/notify"
	"github.com/DoyleJ11/duel-room-client/internal/roomclient"
	"github.com/DoyleJ11/duel-room-client/internal/session"
	"github.com/DoyleJ11/duel-room-client/internal/transport"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:          "roomclient",
	Short:        "Terminal client for a two-team problem duel room",
	SilenceUsage: true,
}

var joinCmd = &cobra.Command{
	Use:   "join [room-url]",
	Short: "Join a room and follow scores and chat",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJoin,
}

var teamCmd = &cobra.Command{
	Use:   "team <team1|team2>",
	Short: "Store the team used the next time you join",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.SetTeam(session.NewDotenvStore(cfg.StorePath), args[0])
	},
}

func init() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg = loaded

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.StorePath, "store", cfg.StorePath, "client storage file (env ROOM_STORE)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug | info | warn | error (env LOG_LEVEL)")
	flags.BoolVar(&cfg.Dev, "dev", cfg.Dev, "human-readable logs (env LOG_DEV)")

	jf := joinCmd.Flags()
	jf.StringVar(&cfg.WSPath, "ws-path", cfg.WSPath, "websocket path on the room server (env ROOM_WS_PATH)")
	jf.StringVar(&cfg.Notifications, "notifications", cfg.Notifications, "granted | denied (env ROOM_NOTIFICATIONS)")

	rootCmd.AddCommand(joinCmd, teamCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func runJoin(cmd *cobra.Command, args []string) (err error) {
	if len(args) == 1 {
		cfg.RoomURL = args[0]
	}
	if cfg.RoomURL == "" {
		return errors.New("room url required (argument or ROOM_URL)")
	}

	log, err := newLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := session.Load(cfg.RoomURL, session.NewDotenvStore(cfg.StorePath))
	if err != nil {
		return err
	}
	log = log.With(zap.String("room_id", sess.RoomID), zap.String("team", sess.Team))

	wsURL, err := transport.SocketURL(sess.BaseURL, cfg.WSPath)
	if err != nil {
		return err
	}
	conn, err := transport.Dial(ctx, wsURL, log)
	if err != nil {
		return err
	}

	view := board.New()
	form := board.NewForm()
	out := cmd.OutOrStdout()

	client := roomclient.New(ctx, roomclient.Deps{
		Session:  sess,
		Channel:  conn,
		View:     view,
		Form:     form,
		Notifier: notify.NewTerminal(out, notify.ParsePermission(cfg.Notifications)),
		API:      httpapi.NewClient(sess.BaseURL, nil, log),
		Logger:   log,
	})
	defer func() {
		client.Close()
		err = multierr.Append(err, conn.Close())
	}()

	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("join room: %w", err)
	}
	log.Info("joined room", zap.String("conn_id", conn.ID))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The page stops updating once the socket drops; so does the client.
		return conn.Run(gctx)
	})
	g.Go(func() error {
		return console.Redraw(gctx, view, out, 20)
	})
	g.Go(func() error {
		if err := console.New(client, form, out, log).Run(gctx, cmd.InOrStdin()); err != nil {
			return err
		}
		stop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
