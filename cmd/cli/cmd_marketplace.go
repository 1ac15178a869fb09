package main

import (
	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/spf13/cobra"
)

// tradeconnect requirements
func newRequirementsCmd(opts *rootOptions) *cobra.Command {
	var search, buyer string
	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "List requirements, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ws, closeFn, err := bootMarket(cmd.Context(), cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			reqs, err := m.Requirements(cmd.Context(), ws)
			if err != nil {
				return err
			}
			if buyer != "" {
				reqs = market.Mine(reqs, buyer)
			}
			return printRequirements(cmd.OutOrStdout(), opts.output, market.Search(reqs, search))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match product or description, case-insensitive")
	cmd.Flags().StringVar(&buyer, "buyer", "", "only requirements posted by this buyer id")
	return cmd
}

// tradeconnect messages
func newMessagesCmd(opts *rootOptions) *cobra.Command {
	var to string
	var grouped bool
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ws, closeFn, err := bootMarket(cmd.Context(), cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			msgs, err := m.Messages(cmd.Context(), ws)
			if err != nil {
				return err
			}
			if to != "" {
				msgs = market.AddressedTo(msgs, to)
			}
			if !grouped {
				return printMessages(cmd.OutOrStdout(), opts.output, msgs)
			}

			reqs, err := m.Requirements(cmd.Context(), ws)
			if err != nil {
				return err
			}
			return printThreads(cmd.OutOrStdout(), opts.output, market.Threads(reqs, market.GroupByRequirement(msgs)))
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "only messages addressed to this user id")
	cmd.Flags().BoolVarP(&grouped, "grouped", "g", false, "group messages by requirement")
	return cmd
}
