package main

import (
	"fmt"
	"io"
	"os"

	"github.com/effective-security/masamcp/config"
	"github.com/effective-security/masamcp/mcpserver"
	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp", "cmd")

type globalFlags struct {
	configFile string
	dotenv     string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "masamcp",
		Short: "Masa MCP - tools for Twitter search, web scraping and AI analysis",
		Long: `masamcp is a Model Context Protocol server exposing the Masa API as tools:

  • live Twitter search with job status and results
  • similarity search over indexed tweets
  • web page scraping
  • search term extraction and data analysis`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&flags.dotenv, "env", ".env", "path to the .env file")

	rootCmd.AddCommand(
		newServeCmd(flags),
		newCallCmd(flags),
		newToolsCmd(),
		newConfigCmd(flags),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig loads the configuration and sets up logging to stderr,
// stdout is reserved for the stdio transport and command output
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configFile, flags.dotenv)
	if err != nil {
		return nil, err
	}
	xlog.SetFormatter(logFormatter(cfg, cmd.ErrOrStderr()))
	xlog.SetGlobalLogLevel(cfg.Level())
	return cfg, nil
}

// logFormatter returns JSON logs in production, plain logs in tests
// and pretty logs for development
func logFormatter(cfg *config.Config, w io.Writer) xlog.Formatter {
	switch {
	case cfg.IsProduction():
		return xlog.NewJSONFormatter(w)
	case cfg.IsTest():
		return xlog.NewStringFormatter(w)
	case cfg.IsDevelopment():
		return xlog.NewPrettyFormatter(w)
	default:
		return xlog.NewStringFormatter(w)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", config.DefaultServerName, mcpserver.Version)
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration, the API key is masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}
}
