package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/store"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	output  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "tradeconnect",
		Short: "Inspect the Global Trade Connect demo marketplace",
		Long: "tradeconnect works on a fresh in-memory workspace seeded with the demo data. " +
			"Nothing is persisted between runs.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "table" && opts.output != "json" {
				return fmt.Errorf("unknown output format %q (want table or json)", opts.output)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log marketplace events to stderr")

	// Marketplace
	rootCmd.AddCommand(newRequirementsCmd(opts))
	rootCmd.AddCommand(newMessagesCmd(opts))

	// Walk-through
	rootCmd.AddCommand(newDemoCmd(opts))
	return rootCmd
}

// bootMarket opens a new seeded workspace and returns its id.
func bootMarket(ctx context.Context, stderr io.Writer, opts *rootOptions) (*market.Marketplace, string, func(), error) {
	s, err := store.NewStore(ctx, store.MemoryDSN)
	if err != nil {
		return nil, "", nil, err
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m := market.New(s, market.WithLogger(logger))
	ws, _, err := m.OpenWorkspace(ctx, "")
	if err != nil {
		s.Close()
		return nil, "", nil, err
	}
	return m, ws, func() { s.Close() }, nil
}
