package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/edu-advisor-api/internal/client"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print dashboard totals",
		Long:  "Fetch enquiries, consultant reports and admissions in parallel and print totals by status.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			d, err := rt.adminDashboard(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			return printSummary(cmd.OutOrStdout(), d)
		},
	}

	return cmd
}

func printSummary(out io.Writer, d *client.AdminDashboard) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	queries := d.Queries.View()
	fmt.Fprintf(w, "QUERIES\t%d\n", len(queries))
	for _, status := range []models.QueryStatus{models.QueryStatusNew, models.QueryStatusContacted, models.QueryStatusClosed} {
		n := len(records.Apply(queries, records.FilterState{}.WithEquals(records.FieldStatus, string(status))))
		fmt.Fprintf(w, "  %s\t%d\n", status, n)
	}

	reports := d.Reports.View()
	fmt.Fprintf(w, "REPORTS\t%d\n", len(reports))
	for _, scope := range models.InterestScopes {
		n := len(records.Apply(reports, records.FilterState{}.WithEquals("interest_scope", string(scope))))
		fmt.Fprintf(w, "  %s\t%d\n", scope, n)
	}

	payouts := models.SummarizePayouts(d.Admissions.View())
	fmt.Fprintf(w, "ADMISSIONS\t%d\n", payouts.TotalAdmissions)
	for _, status := range models.PayoutStatuses {
		fmt.Fprintf(w, "  %s\t%d\t%.2f\n", status, payouts.ByStatus[status], payouts.AmountByStatus[status])
	}
	fmt.Fprintf(w, "  total payout\t\t%.2f\n", payouts.TotalPayout)

	return w.Flush()
}
