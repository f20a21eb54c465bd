package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/internal/application/analytics"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics and activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			now := time.Now()
			stats := a.tasks.Stats()
			fmt.Printf("Tasks: %d total, %d active, %d completed (%d%%), %d overdue\n",
				stats.Total, stats.Active, stats.Completed, stats.Completion, stats.Overdue)

			tasks := a.tasks.All()
			activity := analytics.ActivitySeries(tasks, days, now)
			fmt.Printf("\nActivity (last %d days):\n", days)
			for _, d := range activity {
				fmt.Printf("  %s  %d\n", d.Day.Format("Mon 2006-01-02"), d.Created)
			}

			projects := analytics.ProjectSeries(a.projects.All(), tasks)
			if len(projects) > 0 {
				fmt.Println("\nProjects:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "  NAME\tDONE\tPENDING\tPROGRESS")
				for _, p := range projects {
					fmt.Fprintf(w, "  %s\t%d\t%d\t%d%%\n", p.Name, p.Completed, p.Pending, p.Progress)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "size of the activity window")

	return cmd
}
