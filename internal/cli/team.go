package cli

import (
	"github.com/spf13/cobra"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team membership commands",
	}

	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamCreateCmd())
	cmd.AddCommand(newTeamJoinCmd())
	cmd.AddCommand(newTeamLeaveCmd())

	return cmd
}

func newTeamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams and their members",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Team

			if err := client.Get("/api/v1/teams", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTeamCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new team",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			var result Team

			if err := client.Post("/api/v1/teams", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeamJoinCmd() *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"team_id": teamID}

			if err := client.Post("/api/v1/teams/join", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Joined team")
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Team ID (required)")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newTeamLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the current team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/teams/leave", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left team")
			return nil
		},
	}
}
