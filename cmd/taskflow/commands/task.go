package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/internal/application/stores"
	"github.com/taskflow/core/internal/domain/entities"
)

// NewTaskCommand creates the task command group
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	taskCmd.AddCommand(newTaskAddCommand())
	taskCmd.AddCommand(newTaskListCommand())
	taskCmd.AddCommand(newTaskEditCommand())
	taskCmd.AddCommand(newTaskDoneCommand())
	taskCmd.AddCommand(newTaskDeleteCommand())

	return taskCmd
}

func newTaskAddCommand() *cobra.Command {
	var (
		description string
		due         string
		priority    string
		category    string
		projectID   string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			in := stores.CreateTaskInput{
				Title:       args[0],
				Description: description,
				Priority:    entities.Priority(priority),
				Category:    category,
				ProjectID:   projectID,
			}
			if due != "" {
				if in.DueDate, err = parseDay(due); err != nil {
					return err
				}
			}

			task, err := a.tasks.Add(ctx, in)
			if err != nil {
				if entities.IsStorage(err) {
					return nil // mutation stands; the warning was already surfaced
				}
				return err
			}
			fmt.Printf("%s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority: low, medium, or high")
	cmd.Flags().StringVarP(&category, "category", "c", "", "free-text category")
	cmd.Flags().StringVar(&projectID, "project", "", "project id")

	return cmd
}

func newTaskListCommand() *cobra.Command {
	var (
		status   string
		category string
		project  string
		sortBy   string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with filtering and sorting",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			q := stores.TaskQuery{
				Status:   stores.StatusFilter(status),
				Category: category,
				Project:  project,
				SortBy:   stores.SortKey(sortBy),
				Order:    stores.SortOrder(order),
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDONE\tTITLE\tPRIORITY\tCATEGORY\tDUE")
			for _, t := range a.tasks.Query(q) {
				done := " "
				if t.Completed {
					done = "x"
				}
				due := ""
				if !t.DueDate.IsZero() {
					due = t.DueDate.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\t%s\t%s\n", t.ID, done, t.Title, t.Priority, t.Category, due)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", string(stores.FilterAll), "status filter: all, active, or completed")
	cmd.Flags().StringVarP(&category, "category", "c", stores.CategoryFilterAll, "category filter, 'all' to bypass")
	cmd.Flags().StringVar(&project, "project", stores.ProjectFilterAll, "project filter: a project id, 'all', or 'none' for unassigned")
	cmd.Flags().StringVar(&sortBy, "sort", string(stores.SortByCreatedAt), "sort key: createdAt, dueDate, title, or priority")
	cmd.Flags().StringVar(&order, "order", string(stores.Descending), "sort order: asc or desc")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		// CLI flags cannot pass an empty string comfortably, so "none" stands
		// in for the unassigned-project filter.
		if project == "none" {
			project = stores.ProjectFilterNone
		}
	}

	return cmd
}

func newTaskEditCommand() *cobra.Command {
	var (
		title       string
		description string
		due         string
		priority    string
		category    string
		projectID   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a task's editable fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.tasks.Get(args[0])
			if err != nil {
				return err
			}

			in := stores.UpdateTaskInput{
				Title:       current.Title,
				Description: current.Description,
				DueDate:     current.DueDate,
				Priority:    current.Priority,
				Category:    current.Category,
				ProjectID:   current.ProjectID,
			}
			if cmd.Flags().Changed("title") {
				in.Title = title
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}
			if cmd.Flags().Changed("priority") {
				in.Priority = entities.Priority(priority)
			}
			if cmd.Flags().Changed("category") {
				in.Category = category
			}
			if cmd.Flags().Changed("project") {
				in.ProjectID = projectID
			}
			if cmd.Flags().Changed("due") {
				if in.DueDate, err = parseDay(due); err != nil {
					return err
				}
			}

			if _, err := a.tasks.Update(ctx, args[0], in); err != nil && !entities.IsStorage(err) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&projectID, "project", "", "new project id, empty to unassign")

	return cmd
}

func newTaskDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.tasks.ToggleComplete(ctx, args[0]); err != nil && !entities.IsStorage(err) {
				return err
			}
			return nil
		},
	}
}

func newTaskDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.tasks.Delete(ctx, args[0]); err != nil && !entities.IsStorage(err) {
				return err
			}
			return nil
		},
	}
}
