package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/mcpserver"
	"github.com/effective-security/masamcp/services"
	"github.com/effective-security/masamcp/tools"
	"github.com/effective-security/masamcp/tools/masatools"
	"github.com/effective-security/masamcp/utils"
	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var transport, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if transport != "" {
				cfg.Server.Transport = transport
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err = cfg.Validate(); err != nil {
				return err
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(cfg.Server, a.tools...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, srv, cfg.ShutdownTimeout())
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "transport to serve: stdio or http")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address for the http transport")
	return cmd
}

// serve runs the server until ctx is done, and waits for it to stop
// no longer than the shutdown timeout
func serve(ctx context.Context, srv *mcpserver.Server, shutdownTimeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	logger.KV(xlog.INFO, "status", "signal_received", "timeout", shutdownTimeout.String())
	select {
	case err := <-done:
		return err
	case <-time.After(shutdownTimeout):
		return errors.Errorf("server did not stop in %s", shutdownTimeout)
	}
}

func newCallCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json]",
		Short: "Call a tool with JSON input and print the result",
		Example: `  masamcp call start_live_twitter_search '{"query":"AI agents","maxResults":10}'
  masamcp call get_live_twitter_search_status '{"jobId":"123"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			tool, ok := tools.Find(args[0], a.tools...)
			if !ok {
				return errors.Errorf("unknown tool %q, available: %s", args[0], strings.Join(names(a.tools), ", "))
			}
			input := "{}"
			if len(args) > 1 {
				input = args[1]
			}

			res, err := tool.Call(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.JSONIndent(res))
			return nil
		},
	}
}

type example interface {
	Example() any
}

func newToolsCmd() *cobra.Command {
	var withExamples, withSchema, asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List available tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// listing does not reach the API
			list := masatools.New(services.NewFactory(nil))
			w := cmd.OutOrStdout()

			if asJSON {
				descs := make([]tools.ITool, 0, len(list))
				for _, tool := range list {
					descs = append(descs, tool)
				}
				fmt.Fprintln(w, tools.GetDescriptions(descs...))
				return nil
			}

			for _, tool := range list {
				fmt.Fprintf(w, "%s\n  %s\n", tool.Name(), tool.Description())
				if withSchema {
					fmt.Fprintf(w, "  parameters: %s\n", utils.ToJSON(tool.Parameters()))
				}
				if withExamples {
					if e, ok := tool.(example); ok {
						fmt.Fprintf(w, "  example: %s\n", utils.ToJSON(e.Example()))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withExamples, "examples", false, "print an example input for each tool")
	cmd.Flags().BoolVar(&withSchema, "schema", false, "print the JSON schema of the parameters for each tool")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print names and descriptions as JSON")
	return cmd
}

func names(list []tools.IMCPTool) []string {
	res := make([]string, 0, len(list))
	for _, tool := range list {
		res = append(res, tool.Name())
	}
	return res
}
