package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRequirements(w io.Writer, format string, reqs []models.Requirement) error {
	if format == "json" {
		return writeJSON(w, reqs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tQUANTITY\tDESTINATION\tBUYER\tPOSTED")
	for _, r := range reqs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Product, r.Quantity, r.Destination, r.BuyerName, r.Timestamp.Format(time.RFC3339))
	}
	return tw.Flush()
}

func printMessages(w io.Writer, format string, msgs []models.Message) error {
	if format == "json" {
		return writeJSON(w, msgs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREQUIREMENT\tFROM\tTO\tCONTENT")
	for _, m := range msgs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.RequirementID, m.SenderName, m.ReceiverID, excerpt(m.Content, 60))
	}
	return tw.Flush()
}

func printThreads(w io.Writer, format string, threads []market.Thread) error {
	if format == "json" {
		return writeJSON(w, threads)
	}
	if len(threads) == 0 {
		fmt.Fprintln(w, "No messages yet")
		return nil
	}
	for _, th := range threads {
		fmt.Fprintf(w, "For: %s (%s)\n", th.Requirement.Product, th.Requirement.ID)
		for _, m := range th.Messages {
			fmt.Fprintf(w, "  %s: %s\n", m.SenderName, m.Content)
		}
	}
	return nil
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
