// cmd/boardid-monitor watches a provisioning board's console over a serial
// port. Opening the port and sending a newline is enough for a board waiting
// at its serial gate to continue.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardid-go/internal/monitor"

	"github.com/alecthomas/kong"
	"github.com/goburrow/serial"
)

// exitCode carries a process exit status out of a command.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// Exit status for --once when the board reports "not set".
const exitNotSet exitCode = 2

type CLI struct {
	Port    string        `arg:"" help:"Serial device (e.g. /dev/ttyACM0)"`
	Baud    int           `short:"b" help:"Baud rate" default:"115200"`
	Once    bool          `help:"Exit after the first status line: 0 when an ID is set, 2 when not"`
	Quiet   bool          `short:"q" help:"Do not echo console lines"`
	Timeout time.Duration `help:"Give up after this long (0 = never)"`
	Verbose bool          `short:"v" help:"Enable verbose logging"`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func (c *CLI) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if c.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	port, err := serial.Open(&serial.Config{
		Address:  c.Port,
		BaudRate: c.Baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  200 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", c.Port, err)
	}
	defer port.Close()
	slog.Debug("port open", "port", c.Port, "baud", c.Baud)

	var echo io.Writer = os.Stdout
	if c.Quiet {
		echo = io.Discard
	}
	return watch(ctx, port, echo, c.Once)
}

// watch pokes the board, then follows its console until ctx ends or, with
// once set, until the first status line.
func watch(ctx context.Context, port io.ReadWriter, echo io.Writer, once bool) error {
	if _, err := port.Write([]byte("\n")); err != nil {
		return fmt.Errorf("wake board: %w", err)
	}

	lr := monitor.NewLineReader(port)
	lr.IsTimeout = func(err error) bool { return errors.Is(err, serial.ErrTimeout) }

	var last monitor.Status
	seen := false
	for {
		line, err := lr.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		fmt.Fprintln(echo, line)

		st, ok := monitor.ParseStatus(line)
		if !ok {
			continue
		}
		if !seen || st != last {
			if st.Set {
				slog.Info("board status", "id", st.ID.String(), "role", string(st.ID.Role()), "index", st.ID.Index())
			} else {
				slog.Warn("board status", "id", "not set")
			}
		}
		last, seen = st, true
		if once {
			if !st.Set {
				return exitNotSet
			}
			return nil
		}
	}
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("boardid-monitor"),
		kong.Description("Follow a board's provisioning console and decode its ID."),
		kong.UsageOnError(),
	)
	err := cli.Run()
	var code exitCode
	if errors.As(err, &code) {
		os.Exit(int(code))
	}
	kctx.FatalIfErrorf(err)
}
