// cmd/boardid-sim runs the provisioning firmware against emulated hardware:
// an EEPROM image on disk, a three-position switch driven from a script or
// stdin, and the console on stdout.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardid-go/internal/simconfig"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Profile string `short:"p" help:"Simulator profile (YAML)" type:"existingfile"`
	Image   string `short:"i" help:"EEPROM image file (overrides the profile)"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Run   RunCmd   `cmd:"" default:"withargs" help:"Run setup and the status loop"`
	Dump  DumpCmd  `cmd:"" help:"Show the marker and ID stored in an image"`
	Erase EraseCmd `cmd:"" help:"Clear the marker and ID in an image"`
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

// profile loads, validates and normalizes the selected profile, then applies
// command-line overrides.
func (c *CLI) profile() (*simconfig.Profile, error) {
	p := &simconfig.Profile{}
	if c.Profile != "" {
		var err error
		if p, err = simconfig.Load(c.Profile); err != nil {
			return nil, err
		}
	}
	if c.Image != "" {
		p.EEPROM.Image = c.Image
	}
	if err := simconfig.Validate(p); err != nil {
		return nil, err
	}
	simconfig.Normalize(p)
	return p, nil
}

type RunCmd struct {
	ID      string        `help:"Board ID to provision (e.g. 0x81); overrides the profile"`
	Cycles  int           `help:"Status cycles after setup; 0 runs until interrupted, -1 keeps the profile" default:"-1"`
	Stdin   bool          `help:"Read operator input from stdin: b/m/t move the switch, c connects the console, q quits"`
	Timeout time.Duration `help:"Give up after this long (0 = never)"`
}

func (r *RunCmd) Run(root *CLI) error {
	prof, err := root.profile()
	if err != nil {
		return err
	}
	if r.ID != "" {
		prof.BoardID = r.ID
		if err := simconfig.Validate(prof); err != nil {
			return err
		}
	}
	if r.Cycles >= 0 {
		prof.Report.Cycles = r.Cycles
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if r.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	sim, err := newSimulation(prof, os.Stdout)
	if err != nil {
		return err
	}
	if r.Stdin {
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go sim.readOperator(ctx, os.Stdin, cancel)
	}

	_, err = sim.run(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Info("stopped")
		return nil
	}
	return err
}

type DumpCmd struct{}

func (d *DumpCmd) Run(root *CLI) error {
	prof, err := root.profile()
	if err != nil {
		return err
	}
	return dumpImage(os.Stdout, prof)
}

type EraseCmd struct {
	All bool `help:"Erase the whole image, not just the marker and ID"`
}

func (e *EraseCmd) Run(root *CLI) error {
	prof, err := root.profile()
	if err != nil {
		return err
	}
	return eraseImage(prof, e.All)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("boardid-sim"),
		kong.Description("Simulate board ID provisioning on the host."),
		kong.UsageOnError(),
	)
	err := kctx.Run(&cli)
	kctx.FatalIfErrorf(err)
}
