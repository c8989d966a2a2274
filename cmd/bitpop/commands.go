package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/bitpop/internal/desktop"
	"github.com/example/bitpop/internal/instance"
	"github.com/example/bitpop/internal/panel"
	"github.com/example/bitpop/internal/system"
)

// runPanel opens the panel, or closes the panel that is already open. A lock
// file that cannot be used does not keep the panel from opening.
func (c *cli) runPanel(ctx context.Context) error {
	lock := instance.New(c.opts.LockFile)
	claim, prior, err := lock.Acquire()
	switch {
	case prior != 0:
		log.Print(dismissMessage(prior, err))
		return nil
	case errors.Is(err, instance.ErrHeld):
		return fmt.Errorf("claim instance lock: %w", err)
	case err != nil:
		log.Printf("running without instance lock: %v", err)
	}

	if claim != nil {
		stop := claim.HandleTermination(c.exit)
		defer stop()
		defer claim.Release()
	}

	apps := desktop.Load(c.appDirs...)
	if err := c.startPanel(ctx, c.newHost(c.opts), apps); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("panel exited: %w", err)
	}
	return nil
}

func dismissMessage(pid int, err error) string {
	if err != nil {
		return fmt.Sprintf("failed to close running instance (pid %d): %v", pid, err)
	}
	return fmt.Sprintf("closed running instance (pid %d)", pid)
}

func (c *cli) createAppsCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "apps [query]",
		Short: "List applications matching a query",
		Long: `List installed applications whose name contains the query, ignoring case.
Results are capped at ten unless --all is given.

Examples:
  bitpop apps
  bitpop apps term --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			repo := desktop.Load(c.appDirs...)
			matches := repo.Search(query)
			if all {
				matches = desktop.Filter(repo.All(), query, 0)
			}
			if len(matches) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no applications found")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, rec := range matches {
				fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Name, rec.Exec, rec.Icon)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every match instead of the first ten")
	return cmd
}

func (c *cli) createLaunchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "launch <query>",
		Short: "Launch the first application matching a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			rec, ok := desktop.Load(c.appDirs...).Best(query)
			if !ok {
				return fmt.Errorf("no application matches %q", query)
			}
			if err := desktop.Launch(c.newHost(c.opts), rec); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "launched %s\n", rec.Name)
			return err
		},
	}
}

func (c *cli) createStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the clock, battery and radio readouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(contextOf(cmd), 5*time.Second)
			defer cancel()

			host := c.newHost(c.opts)
			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Time:\t%s\n", panel.ClockText(now))
			fmt.Fprintf(w, "Date:\t%s\n", panel.DateText(now))
			fmt.Fprintf(w, "Battery:\t%s\n", host.Battery().Label())
			fmt.Fprintf(w, "Wi-Fi:\t%s\n", host.Wifi(ctx).Label())
			fmt.Fprintf(w, "Bluetooth:\t%s\n", host.Bluetooth(ctx).Label())
			return w.Flush()
		},
	}
}

func (c *cli) createPowerCommand() *cobra.Command {
	valid := make([]string, 0, len(system.PowerActions))
	for _, action := range system.PowerActions {
		valid = append(valid, string(action))
	}

	return &cobra.Command{
		Use:       "power <" + strings.Join(valid, "|") + ">",
		Short:     "Run a session or power action",
		Args:      cobra.ExactArgs(1),
		ValidArgs: valid,
		RunE: func(_ *cobra.Command, args []string) error {
			action, err := system.ParsePowerAction(args[0])
			if err != nil {
				return err
			}
			return c.newHost(c.opts).Power(action)
		},
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
