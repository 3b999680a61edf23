package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saltandserenity/booking/internal/usecase"
)

var recordsPage int

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List leads, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRecords,
}

var recordsStatusCmd = &cobra.Command{
	Use:   "status <lead-id> <New|Contacted|Booked>",
	Short: "Move a lead forward in the pipeline",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordsStatus,
}

var referrersCmd = &cobra.Command{
	Use:   "referrers",
	Short: "List referrers and their referral counts",
	Args:  cobra.NoArgs,
	RunE:  runReferrers,
}

func init() {
	recordsCmd.Flags().IntVarP(&recordsPage, "page", "p", 1, "Page number (50 leads per page)")
	recordsCmd.AddCommand(recordsStatusCmd)
}

func runRecords(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	page, err := client().Records(ctx, recordsPage)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(page.Records))
	for _, l := range page.Records {
		rows = append(rows, []string{l.ID, l.FullName, l.Email, string(l.Status), l.CreatedAt.Format("2006-01-02"), l.ReferrerID})
	}
	out := cmd.OutOrStdout()
	printTable(out, []string{"ID", "Name", "Email", "Status", "Created", "Referrer"}, rows)
	fmt.Fprintf(out, "Page %d of %d (%d leads)\n", page.Page, max(page.TotalPages, 1), page.Total)
	return nil
}

func runRecordsStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	lead, err := client().SetLeadStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", lead.ID, lead.Status)
	return nil
}

func runReferrers(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	refs, err := client().Referrers(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(refs))
	for _, r := range refs {
		rows = append(rows, []string{r.ID, r.FullName, r.Email, strconv.Itoa(r.ReferralsCount), usecase.ReferralURL(strings.TrimRight(siteURL, "/"), r.ID)})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email", "Referrals", "Link"}, rows)
	return nil
}
