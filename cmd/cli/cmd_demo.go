package main

import (
	"fmt"

	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/models"
	"github.com/spf13/cobra"
)

// tradeconnect demo
func newDemoCmd(opts *rootOptions) *cobra.Command {
	var buyerName, supplierName string
	in := models.RequirementInput{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through a buyer posting and a supplier replying",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			m, ws, closeFn, err := bootMarket(ctx, cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			buyer, err := m.Login(ctx, ws, buyerName, models.RoleBuyer)
			if err != nil {
				return fmt.Errorf("buyer login: %w", err)
			}
			fmt.Fprintf(out, "1. %s logged in as %s (%s)\n", buyer.Username, buyer.Role, buyer.ID)

			req, err := m.AddRequirement(ctx, ws, in)
			if err != nil {
				return fmt.Errorf("post requirement: %w", err)
			}
			fmt.Fprintf(out, "2. Posted %s: %s to %s\n", req.ID, req.Quantity+" of "+req.Product, req.Destination)

			supplier, err := m.Login(ctx, ws, supplierName, models.RoleSupplier)
			if err != nil {
				return fmt.Errorf("supplier login: %w", err)
			}
			view, err := m.SupplierDashboard(ctx, ws, "", "")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "3. %s logged in as %s and sees %d requirements\n", supplier.Username, supplier.Role, len(view.Requirements))

			msg, err := m.AddMessage(ctx, ws, models.MessageInput{
				RequirementID: req.ID,
				ReceiverID:    req.BuyerID,
				Content:       fmt.Sprintf("%s can ship %s of %s to %s.", supplier.Username, req.Quantity, req.Product, req.Destination),
			})
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}
			fmt.Fprintf(out, "4. Sent %s to %s\n", msg.ID, req.BuyerName)

			reqs, err := m.Requirements(ctx, ws)
			if err != nil {
				return err
			}
			msgs, err := m.Messages(ctx, ws)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "5. %s's inbox:\n", buyer.Username)
			threads := market.Threads(market.Mine(reqs, buyer.ID), market.GroupByRequirement(market.AddressedTo(msgs, buyer.ID)))
			return printThreads(out, opts.output, threads)
		},
	}
	cmd.Flags().StringVar(&buyerName, "name", "Demo Imports Ltd.", "buyer display name")
	cmd.Flags().StringVar(&supplierName, "supplier", "Demo Exports Co.", "supplier display name")
	cmd.Flags().StringVar(&in.Product, "product", "Bamboo Flooring", "product to request")
	cmd.Flags().StringVar(&in.Description, "description", "FSC certified strand-woven planks", "requirement description")
	cmd.Flags().StringVar(&in.Quantity, "quantity", "2 Containers", "requested quantity")
	cmd.Flags().StringVar(&in.Destination, "destination", "Port of Felixstowe", "destination port or city")
	return cmd
}
