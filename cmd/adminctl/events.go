package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saltandserenity/booking/internal/console"
)

var (
	eventsLead  string
	eventInput  console.EventInput
	eventUpdate struct {
		typeOfEvent, date, status, notes, financialNotes string
		adults, children                                 int
	}
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events, optionally for one lead",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event linked to a lead",
	Args:  cobra.NoArgs,
	RunE:  runEventsCreate,
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update <event-id>",
	Short: "Change fields of an event",
	Long: `Change fields of an event. Only flags given on the command line are
sent; the linked lead cannot be changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEventsUpdate,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsLead, "lead", "", "Only events linked to this lead ID")

	f := eventsCreateCmd.Flags()
	f.StringVar(&eventInput.LeadID, "lead", "", "Lead ID (required)")
	f.StringVar(&eventInput.TypeOfEvent, "type", "", "Type of event (required)")
	f.StringVar(&eventInput.DateOfEvent, "date", "", "Event date, YYYY-MM-DD (required)")
	f.IntVar(&eventInput.NumberOfAdults, "adults", 0, "Number of adults")
	f.IntVar(&eventInput.NumberOfChildren, "children", 0, "Number of children")
	f.StringVar(&eventInput.Status, "status", "", "New or Scheduled")
	f.StringVar(&eventInput.Notes, "notes", "", "Notes")
	f.StringVar(&eventInput.FinancialNotes, "financial-notes", "", "Financial notes")
	eventsCreateCmd.MarkFlagRequired("lead")
	eventsCreateCmd.MarkFlagRequired("type")
	eventsCreateCmd.MarkFlagRequired("date")

	u := eventsUpdateCmd.Flags()
	u.StringVar(&eventUpdate.typeOfEvent, "type", "", "Type of event")
	u.StringVar(&eventUpdate.date, "date", "", "Event date, YYYY-MM-DD")
	u.IntVar(&eventUpdate.adults, "adults", 0, "Number of adults")
	u.IntVar(&eventUpdate.children, "children", 0, "Number of children")
	u.StringVar(&eventUpdate.status, "status", "", "New or Scheduled")
	u.StringVar(&eventUpdate.notes, "notes", "", "Notes")
	u.StringVar(&eventUpdate.financialNotes, "financial-notes", "", "Financial notes")

	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsUpdateCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	events, err := client().Events(ctx, eventsLead)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, eventRow(e))
	}
	printTable(cmd.OutOrStdout(), eventHeaders, rows)
	return nil
}

func runEventsCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	ev, err := client().CreateEvent(ctx, eventInput)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), eventHeaders, [][]string{eventRow(*ev)})
	return nil
}

func runEventsUpdate(cmd *cobra.Command, args []string) error {
	patch := patchFromFlags(cmd)
	if patch == (console.EventPatch{}) {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	ev, err := client().UpdateEvent(ctx, args[0], patch)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), eventHeaders, [][]string{eventRow(*ev)})
	return nil
}

// patchFromFlags sets only the fields whose flags were given, so an
// explicit --adults 0 is still sent.
func patchFromFlags(cmd *cobra.Command) console.EventPatch {
	var p console.EventPatch
	f := cmd.Flags()
	if f.Changed("type") {
		p.TypeOfEvent = &eventUpdate.typeOfEvent
	}
	if f.Changed("date") {
		p.DateOfEvent = &eventUpdate.date
	}
	if f.Changed("adults") {
		p.NumberOfAdults = &eventUpdate.adults
	}
	if f.Changed("children") {
		p.NumberOfChildren = &eventUpdate.children
	}
	if f.Changed("status") {
		p.Status = &eventUpdate.status
	}
	if f.Changed("notes") {
		p.Notes = &eventUpdate.notes
	}
	if f.Changed("financial-notes") {
		p.FinancialNotes = &eventUpdate.financialNotes
	}
	return p
}

var eventHeaders = []string{"ID", "Type", "Date", "Adults", "Children", "Status", "Lead", "Notes"}

func eventRow(e console.Event) []string {
	date := e.Fields.EventDate
	if len(date) >= 10 {
		date = date[:10]
	}
	return []string{
		e.ID,
		e.Fields.TypeOfEvent,
		date,
		strconv.Itoa(e.Fields.Adults),
		strconv.Itoa(e.Fields.Children),
		e.Fields.Status,
		strings.Join(e.Fields.Lead, ","),
		e.Fields.Notes,
	}
}
