package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Repair invoices whose paid flag disagrees with their splits",
		Long: `Reconcile scans every invoice once. Unpaid invoices whose splits are all
paid are flagged paid, and paid invoices with unpaid splits have those
splits marked paid. Running it again is harmless.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.ledger.Reconcile(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %d\n", "Checked", report.Checked)
			fmt.Fprintf(out, "%-12s %d\n", "Settled", report.Settled)
			fmt.Fprintf(out, "%-12s %d\n", "Cascaded", report.Cascaded)
			fmt.Fprintf(out, "%-12s %d\n", "Splits paid", report.SplitsPaid)

			if len(report.Failed) > 0 {
				return fmt.Errorf("%d invoices could not be reconciled: %s",
					len(report.Failed), strings.Join(report.Failed, ", "))
			}
			return nil
		},
	}
	return cmd
}
