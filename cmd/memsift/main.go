// Command memsift classifies agent events against the configured LLM
// backends and prints the filter decision as JSON. Intended for smoke tests
// and shell pipelines; the library API is the primary integration surface.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/memsift/memsift"
	"github.com/memsift/memsift/config"
	"github.com/memsift/memsift/obs"

	// Register the built-in provider adapters.
	_ "github.com/memsift/memsift/providers/anthropic"
	_ "github.com/memsift/memsift/providers/compat"
	_ "github.com/memsift/memsift/providers/openai"
)

var (
	configPath string
	verbose    bool

	eventContext string
	sessionID    string
	trace        bool
)

var rootCmd = &cobra.Command{
	Use:   "memsift",
	Short: "Session-scoped memory filter for agent event streams",
	Long: "memsift decides whether observed agent events should be persisted " +
		"into a long-term memory graph, routing each session to one of the " +
		"configured LLM backends with priority fallback.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <event description>",
	Short: "Classify one event and print the decision as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if !verbose {
			logrus.SetLevel(cfg.LogLevel())
		}

		if trace {
			shutdown, err := obs.Init(cmd.Context(), obs.Options{
				ServiceName: "memsift",
				Exporter:    obs.ExporterStdout,
			})
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			defer func() { _ = shutdown(context.Background()) }()
		}

		filter := memsift.New(
			memsift.WithProviders(cfg.Providers...),
			memsift.WithPolicy(cfg.Session),
		)
		decision := filter.ShouldStore(cmd.Context(), args[0], eventContext, sessionID)

		out, err := json.MarshalIndent(decision, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered backend kinds and the usable pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		registered := memsift.RegisteredProviders()
		sort.Strings(registered)
		fmt.Fprintln(cmd.OutOrStdout(), "registered kinds:")
		for _, name := range registered {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}

		filter := memsift.New(
			memsift.WithProviders(cfg.Providers...),
			memsift.WithPolicy(cfg.Session),
		)
		fmt.Fprintln(cmd.OutOrStdout(), "usable pool (priority order):")
		for _, name := range filter.Sessions().Providers() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}
		if !filter.Enabled() {
			fmt.Fprintln(cmd.OutOrStdout(), "  (none; filtering is disabled)")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./memsift.yaml or ~/.config/memsift/memsift.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	checkCmd.Flags().StringVar(&eventContext, "context", "", "Additional context for the event")
	checkCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session identifier (generated when omitted)")
	checkCmd.Flags().BoolVar(&trace, "trace", false, "Print OpenTelemetry spans to stdout")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(providersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
