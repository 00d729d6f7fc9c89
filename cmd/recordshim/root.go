package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/petasbytes/recordshim/commands"
	"github.com/petasbytes/recordshim/internal/config"
	"github.com/petasbytes/recordshim/internal/fsops"
	"github.com/petasbytes/recordshim/internal/httpapi"
	"github.com/petasbytes/recordshim/internal/invoke"
	"github.com/petasbytes/recordshim/internal/safety"
	"github.com/petasbytes/recordshim/internal/telemetry"
)

type app struct {
	configPath string
	cfg        config.Config
	dispatcher *invoke.Dispatcher
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "recordshim",
		Short:         "Save and load record files for a front-end",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(a.serveCmd(), a.saveCmd(), a.loadCmd(), a.commandsCmd())
	return root
}

// setup loads config and builds the dispatcher shared by every subcommand.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	telemetry.Configure(cfg.Telemetry.Observe, cfg.Telemetry.EventsDir)

	// Emit resolves the events dir against the working directory, so the
	// denylist must too.
	eventsDir, err := safety.ResolveDir(cfg.Telemetry.EventsDir)
	if err != nil {
		return fmt.Errorf("events dir: %w", err)
	}
	policy, err := safety.NewPolicy(cfg.Root, eventsDir)
	if err != nil {
		return fmt.Errorf("root: %w", err)
	}
	a.cfg = cfg
	a.dispatcher = invoke.New(commands.Registry(fsops.NewStore(policy)))
	return nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the commands over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.Listen)
			if err != nil {
				return err
			}
			if a.cfg.Root == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: no root configured; callers may read and write any path this process can")
			}
			return httpapi.Serve(ctx, ln, httpapi.New(a.dispatcher, a.cfg.MaxBodyBytes).Routes())
		},
	}
}

func (a *app) saveCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "save <path>",
		Short: "Write data verbatim to path (stdin when --data is not given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("data") {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				data = string(b)
			}
			input, err := json.Marshal(commands.SaveRequest{Path: args[0], Data: data})
			if err != nil {
				return err
			}
			_, err = a.run(cmd.Context(), commands.SaveRecordsName, input)
			return err
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "payload to write")
	return cmd
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Print the text stored at path, or [] when absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := json.Marshal(commands.LoadRequest{Path: args[0]})
			if err != nil {
				return err
			}
			out, err := a.run(cmd.Context(), commands.LoadRecordsName, input)
			if err != nil {
				return err
			}
			// Verbatim: no trailing newline is added.
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func (a *app) commandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Print the command catalogue as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.dispatcher.Commands)
		},
	}
}

func (a *app) run(ctx context.Context, name string, input json.RawMessage) (string, error) {
	ctx, _ = telemetry.EnsureCallID(ctx, "")
	res := a.dispatcher.Invoke(ctx, name, input)
	if !res.OK() {
		return "", errors.New(res.Error)
	}
	return res.Output, nil
}
