package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clipdeck/internal/dashboard"
	"clipdeck/internal/domain/services"
)

var projectDescription string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project with its presentations and slides",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectDescription, "description", "", "Optional description")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

// withPanel opens the store and hands an admin panel, already loaded, to fn
func withPanel(cmd *cobra.Command, fn func(p *dashboard.AdminPanel) error) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	caller, err := s.actAs(ctx, actAsEmail)
	if err != nil {
		return err
	}

	panel := dashboard.NewAdminPanel(s.services(), caller, cmdLogger())
	if err := panel.Load(ctx); err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return fn(panel)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	return withPanel(cmd, func(p *dashboard.AdminPanel) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tCREATED")
		for _, proj := range p.State().Projects {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", proj.ID, proj.Title, proj.CreatedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	})
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	return withPanel(cmd, func(p *dashboard.AdminPanel) error {
		req := &services.CreateProjectRequest{Title: args[0]}
		if projectDescription != "" {
			req.Description = &projectDescription
		}
		proj, err := p.CreateProject(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", proj.ID)
		return nil
	})
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	return withPanel(cmd, func(p *dashboard.AdminPanel) error {
		if err := p.DeleteProject(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	})
}
