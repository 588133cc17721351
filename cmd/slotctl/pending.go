package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Govind-619/SlotPay/config"
	"github.com/Govind-619/SlotPay/jobs"
	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/repository"
	"github.com/spf13/cobra"
)

func pendingCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List orders still waiting for a payment webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db)

			reporter := jobs.NewStaleOrderReporter(repository.NewPaymentLogRepository(db), olderThan, 0)
			stale, err := reporter.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printPending(cmd.OutOrStdout(), stale)
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "only orders created before now minus this")

	return cmd
}

func printPending(out io.Writer, logs []models.PaymentLog) error {
	if len(logs) == 0 {
		_, err := fmt.Fprintln(out, "No pending orders")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER ID\tSELLER\tAMOUNT\tSLOTS\tCREATED")
	for _, l := range logs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", l.RazorpayOrderID, l.SellerID, l.Amount, l.SlotsAdded, l.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d pending orders\n", len(logs))
	return err
}
