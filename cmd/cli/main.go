// cmd/cli/main.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/keshon/cmdhandler/internal/app"
	"github.com/keshon/cmdhandler/internal/config"
	"github.com/keshon/cmdhandler/internal/console"
	"github.com/keshon/cmdhandler/internal/logging"
	"github.com/keshon/cmdhandler/internal/storage"
	"github.com/keshon/cmdhandler/pkg/util"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile      string
		prefix       string
		commandsPath string
	)

	load := func() (*config.Config, error) {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		cfg, err := config.New(files...)
		if err != nil {
			return nil, err
		}
		if prefix != "" {
			cfg.Prefix = prefix
		}
		if commandsPath != "" {
			cfg.CommandsPath = commandsPath
		}
		logging.Setup(cfg.LogLevel, true)
		return cfg, nil
	}

	root := &cobra.Command{
		Use:           "cli",
		Short:         "Run and inspect prefix commands from a terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&envFile, "env", "", "path to a .env file")
	root.PersistentFlags().StringVarP(&prefix, "prefix", "p", "", "override PREFIX")
	root.PersistentFlags().StringVarP(&commandsPath, "commands", "c", "", "override COMMANDS_PATH")

	root.AddCommand(newRunCmd(load), newListCmd(load), newHistoryCmd(load))
	return root
}

func newRunCmd(load func() (*config.Config, error)) *cobra.Command {
	var noHistory bool
	c := &cobra.Command{
		Use:   "run",
		Short: "Read messages from stdin and dispatch them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			var store *storage.Storage
			if !noHistory {
				if store, err = storage.New(cfg.StoragePath); err != nil {
					return err
				}
				defer store.Close()
			}

			h, err := app.NewHandler(cfg, store)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return console.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), h)
		},
	}
	c.Flags().BoolVar(&noHistory, "no-history", false, "do not record invocations")
	return c
}

func newListCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the command registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			h, err := app.NewHandler(cfg, nil)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COMMAND\tALIASES\tSOURCE\tDESCRIPTION")
			for _, c := range h.Registry().Commands() {
				src := c.Source
				if src == "" {
					src = "(built-in)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Usage(h.Prefix()), strings.Join(c.Aliases, ","), src, c.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, rej := range h.Report().Rejected {
				fmt.Fprintf(cmd.ErrOrStderr(), "rejected: %v\n", rej)
			}
			return nil
		},
	}
}

func newHistoryCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		limit      int
		timeFormat string
	)
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recorded invocations, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			store, err := storage.New(cfg.StoragePath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.FetchAllCommandHistory()
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTRANSPORT\tCHANNEL\tUSER\tCOMMAND\tFAILED")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s %s\t%t\n",
					util.FormatDateTpl(r.Datetime.Local(), timeFormat), r.Transport, r.ChannelID, r.Username,
					r.Command, strings.Join(r.Args, " "), r.Failed)
			}
			return w.Flush()
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 20, "maximum records to show, 0 for all")
	c.Flags().StringVar(&timeFormat, "time-format", "YYYY-MM-DD hh:mm:ss", "time template using YYYY, YY, MM, DD, hh, mm, ss")
	return c
}
