package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/bitpop/internal/config"
	"github.com/example/bitpop/internal/desktop"
	"github.com/example/bitpop/internal/logging"
	"github.com/example/bitpop/internal/panel"
	"github.com/example/bitpop/internal/system"
)

func main() {
	c := newCLI()
	root := c.rootCommand()

	err := root.Execute()
	c.close()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli carries state shared by every command.
type cli struct {
	v       *viper.Viper
	opts    config.Options
	appDirs []string
	newHost func(opts config.Options) *system.Host
	// startPanel runs the tray until it closes.
	startPanel func(ctx context.Context, host panel.Host, apps *desktop.Repository) error
	exit       func(code int)
	logSink    io.Closer
}

func newCLI() *cli {
	return &cli{
		v: config.New(),
		newHost: func(opts config.Options) *system.Host {
			return system.NewHost(opts.BatteryDir)
		},
		startPanel: func(ctx context.Context, host panel.Host, apps *desktop.Repository) error {
			return panel.NewRunner(host, apps).Start(ctx)
		},
		exit: os.Exit,
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bitpop",
		Short: "Single-instance application launcher and status panel",
		Long: `BitPop shows a tray panel with the clock, battery, Wi-Fi and bluetooth
state, an application list and power actions. Running it while a panel is
already open closes the existing panel instead.

Examples:
  bitpop                 # open the panel, or close the one already open
  bitpop apps fire       # list applications matching "fire"
  bitpop launch firefox  # launch the best match
  bitpop status          # print the status readouts`,
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runPanel(contextOf(cmd))
		},
	}

	flags := root.PersistentFlags()
	flags.Bool(config.KeyDebug, false, "enable verbose logging")
	flags.StringSliceVar(&c.appDirs, "apps-dir", desktop.DefaultDirs(), "application directories in priority order")
	if err := c.v.BindPFlag(config.KeyDebug, flags.Lookup(config.KeyDebug)); err != nil {
		panic(err)
	}

	root.AddCommand(
		c.createAppsCommand(),
		c.createLaunchCommand(),
		c.createStatusCommand(),
		c.createPowerCommand(),
	)
	return root
}

func (c *cli) setup(*cobra.Command, []string) error {
	c.opts = config.Load(c.v)

	sink, err := logging.Setup(c.opts.LogFile)
	if err != nil {
		log.Printf("file logging disabled: %v", err)
	}
	c.logSink = sink
	if c.opts.Debug {
		logging.EnableDebug()
	}
	logging.Debugf("run %s lock=%s battery=%s", logging.RunID(), c.opts.LockFile, c.opts.BatteryDir)
	return nil
}

func (c *cli) close() {
	if c.logSink != nil {
		_ = c.logSink.Close()
	}
}
