package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/internal/application/stores"
	"github.com/taskflow/core/internal/domain/entities"
)

// NewProjectCommand creates the project command group
func NewProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	projectCmd.AddCommand(newProjectAddCommand())
	projectCmd.AddCommand(newProjectListCommand())
	projectCmd.AddCommand(newProjectEditCommand())
	projectCmd.AddCommand(newProjectDeleteCommand())

	return projectCmd
}

func newProjectAddCommand() *cobra.Command {
	var (
		description string
		color       string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			project, err := a.projects.Add(ctx, stores.CreateProjectInput{
				Name:        args[0],
				Description: description,
				Color:       color,
			})
			if err != nil {
				if entities.IsStorage(err) {
					return nil
				}
				return err
			}
			fmt.Printf("%s\n", project.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().StringVar(&color, "color", "", "color token, named or hex")

	return cmd
}

func newProjectListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTASKS\tDONE\tPROGRESS")
			for _, p := range a.projects.All() {
				counts := a.projects.TaskCounts(p.ID)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d%%\n", p.ID, p.Name, counts.Total, counts.Completed, counts.Completion)
			}
			return w.Flush()
		},
	}
}

func newProjectEditCommand() *cobra.Command {
	var (
		name        string
		description string
		color       string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a project's editable fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.projects.Get(args[0])
			if err != nil {
				return err
			}

			in := stores.UpdateProjectInput{
				Name:        current.Name,
				Description: current.Description,
				Color:       current.Color,
			}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}
			if cmd.Flags().Changed("color") {
				in.Color = color
			}

			if _, err := a.projects.Update(ctx, args[0], in); err != nil && !entities.IsStorage(err) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&color, "color", "", "new color token")

	return cmd
}

func newProjectDeleteCommand() *cobra.Command {
	var (
		cascade bool
		detach  bool
	)

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project, resolving its tasks",
		Long: `Delete a project. Exactly one policy flag is required: --cascade deletes
every task assigned to the project, --detach keeps the tasks and clears
their project reference. There is no default; the choice must be explicit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cascade == detach {
				return fmt.Errorf("exactly one of --cascade or --detach is required")
			}
			policy := entities.DetachTasks
			if cascade {
				policy = entities.CascadeTasks
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.projects.Delete(ctx, args[0], policy); err != nil && !entities.IsStorage(err) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "delete all tasks assigned to the project")
	cmd.Flags().BoolVar(&detach, "detach", false, "keep the tasks, clearing their project reference")

	return cmd
}
