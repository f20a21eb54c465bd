package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/internal/application/stores"
	"github.com/taskflow/core/internal/domain/entities"
)

// NewEventCommand creates the event command group
func NewEventCommand() *cobra.Command {
	eventCmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}

	eventCmd.AddCommand(newEventAddCommand())
	eventCmd.AddCommand(newEventListCommand())
	eventCmd.AddCommand(newEventEditCommand())
	eventCmd.AddCommand(newEventDeleteCommand())

	return eventCmd
}

func newEventAddCommand() *cobra.Command {
	var (
		start       string
		end         string
		description string
		color       string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			in := stores.CreateEventInput{
				Title:       args[0],
				Description: description,
				Color:       color,
			}
			if start != "" {
				if in.Start, err = parseStamp(start); err != nil {
					return err
				}
			}
			if end != "" {
				if in.End, err = parseStamp(end); err != nil {
					return err
				}
			} else if start != "" {
				in.End = in.Start.Add(time.Hour)
			}

			event, err := a.events.Add(ctx, in)
			if err != nil {
				if entities.IsStorage(err) {
					return nil
				}
				return err
			}
			fmt.Printf("%s\n", event.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "end, defaults to one hour after start")
	cmd.Flags().StringVarP(&description, "description", "d", "", "event description")
	cmd.Flags().StringVar(&color, "color", "", "color token")

	return cmd
}

func newEventListCommand() *cobra.Command {
	var (
		day   string
		month string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events for a day or a month view",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var events []entities.CalendarEvent
			switch {
			case day != "":
				d, err := parseDay(day)
				if err != nil {
					return err
				}
				events = a.events.EventsOnDay(d)
			case month != "":
				m, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q (want YYYY-MM)", month)
				}
				events = a.events.EventsInMonthView(m)
			default:
				events = a.events.EventsInMonthView(time.Now())
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.ID, e.Title,
					e.Start.Format("2006-01-02 15:04"),
					e.End.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "list events on this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&month, "month", "", "list events on this month's grid (YYYY-MM)")

	return cmd
}

func newEventEditCommand() *cobra.Command {
	var (
		title       string
		start       string
		end         string
		description string
		color       string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a calendar event's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.events.Get(args[0])
			if err != nil {
				return err
			}

			in := stores.UpdateEventInput{
				Title:       current.Title,
				Start:       current.Start,
				End:         current.End,
				Description: current.Description,
				Color:       current.Color,
			}
			if cmd.Flags().Changed("title") {
				in.Title = title
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}
			if cmd.Flags().Changed("color") {
				in.Color = color
			}
			if cmd.Flags().Changed("start") {
				if in.Start, err = parseStamp(start); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if in.End, err = parseStamp(end); err != nil {
					return err
				}
			}

			if _, err := a.events.Update(ctx, args[0], in); err != nil && !entities.IsStorage(err) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVar(&start, "start", "", "new start")
	cmd.Flags().StringVar(&end, "end", "", "new end")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&color, "color", "", "new color token")

	return cmd
}

func newEventDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.events.Delete(ctx, args[0]); err != nil && !entities.IsStorage(err) {
				return err
			}
			return nil
		},
	}
}
