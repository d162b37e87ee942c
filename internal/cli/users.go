package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage portal accounts",
	}
	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersStatsCmd(app),
		newUsersPromoteCmd(app),
		newUsersDemoteCmd(app),
		newUsersDeleteCmd(app),
	)
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			users, err := app.client.ListUsers(ctx)
			if err != nil {
				return commandError(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
			}
			return w.Flush()
		},
	}
}

func newUsersStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show account counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			stats, err := app.client.UserStats(ctx)
			if err != nil {
				return commandError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Total accounts: %d\n", stats.Total)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", fallback(stats.Employees.Label, "Employees"), stats.Employees.Count)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", fallback(stats.Administrators.Label, "Administrators"), stats.Administrators.Count)
			return nil
		},
	}
}

func newUsersPromoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <user-id>",
		Short: "Grant administrator rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.client.PromoteToAdmin(ctx, args[0]); err != nil {
				return commandError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s promoted to administrator.\n", args[0])
			return nil
		},
	}
}

func newUsersDemoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demote <user-id>",
		Short: "Revoke administrator rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.client.DemoteFromAdmin(ctx, args[0]); err != nil {
				return commandError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s demoted to employee.\n", args[0])
			return nil
		},
	}
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.client.DeleteUser(ctx, args[0]); err != nil {
				return commandError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted.\n", args[0])
			return nil
		},
	}
}
