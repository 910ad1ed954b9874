package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wastenot/domain"
	"wastenot/pkg/transfer"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Export inventory as CSV or the full data bundle as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := transfer.ContentType(format); err != nil {
				return err
			}
			services, err := openServices(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer file.Close()
				w = file
			}

			_, err = services.Transfer.Export(cmd.Context(), format, w)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", domain.ExportFormatJSON, "export format (csv|json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "import <file>",
		Short:        "Replace stored data with a JSON export",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer file.Close()

			services, err := openServices(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}

			res, err := services.Transfer.Import(cmd.Context(), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items and %d recipes\n", res.Items, res.Recipes)
			return nil
		},
	}
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Print waste analytics for the last N days",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := openServices(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}

			report, err := services.Analytics.GetReport(cmd.Context(), days)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			writeReportText(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "window size in days (1-365)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

// NewRemindCommand creates the remind command.
func NewRemindCommand(rootOpts *RootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:          "remind",
		Short:        "Send the expiry reminder email now",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := openServices(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}

			if dryRun {
				summary, err := services.Reminder.Summary(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			res, err := services.Reminder.SendDailyReminder(cmd.Context())
			if err != nil {
				return err
			}
			if res.Sent {
				fmt.Fprintf(cmd.OutOrStdout(), "reminder sent to %s\n", res.To)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "reminder skipped: %s\n", res.Reason)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the summary without sending")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReportText(w io.Writer, r domain.AnalyticsReport) {
	fmt.Fprintf(w, "Last %d days\n", r.PeriodDays)
	fmt.Fprintf(w, "  items:        %d\n", r.TotalItems)
	fmt.Fprintf(w, "  wasted:       %d (%.1f%%)\n", r.WastedItems, r.WastePercentage)
	fmt.Fprintf(w, "  money saved:  %s\n", r.MoneySavedDisplay)
	if !r.Insights.HasData {
		return
	}
	fmt.Fprintf(w, "  top wasted:   %s\n", r.Insights.TopWastedItem)
	fmt.Fprintf(w, "  best day:     %s\n", r.Insights.BestShoppingDay)
	fmt.Fprintf(w, "  trend:        %s\n", r.Insights.ImprovementTrend)
}
