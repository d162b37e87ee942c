package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		userID string
		date   string
		today  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show attendance history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			filter := apiclient.HistoryFilter{UserID: userID, Date: date}
			if today {
				filter.Date = time.Now().Format("2006-01-02")
			}

			history, err := app.client.AttendanceHistory(ctx, filter)
			if err != nil {
				return commandError(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tCLOCK IN\tCLOCK OUT\tLOCATION")
			for _, userHistory := range history {
				for _, entry := range userHistory.Attendances {
					clockOut := "-"
					if entry.ClockOutDate != "" {
						clockOut = entry.ClockOutDate + " " + entry.ClockOutTime
					}
					fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
						userHistory.Name,
						entry.ClockInDate, entry.ClockInTime,
						clockOut,
						fallback(entry.LocationName(), "-"),
					)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "filter by user ID")
	cmd.Flags().StringVar(&date, "date", "", "filter by date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&today, "today", false, "only today's entries")

	cmd.AddCommand(newHistoryClearCmd(app))
	return cmd
}

func newHistoryClearCmd(app *App) *cobra.Command {
	var (
		userID string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete attendance history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			switch {
			case all:
				if err := app.client.DeleteAllHistory(ctx); err != nil {
					return commandError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All attendance history deleted.")
			case userID != "":
				if err := app.client.DeleteHistory(ctx, apiclient.HistoryFilter{UserID: userID}); err != nil {
					return commandError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Attendance history for user %s deleted.\n", userID)
			default:
				return errors.New("pass --user <id> or --all")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "delete a single user's history")
	cmd.Flags().BoolVar(&all, "all", false, "delete everyone's history")
	return cmd
}

func newRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the latest check-ins",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			recent, err := app.client.RecentCheckIns(ctx, limit)
			if err != nil {
				return commandError(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tLOCATION\tCLOCK IN\tSTATUS\tDURATION")
			for _, checkIn := range recent {
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\n",
					checkIn.UserName,
					fallback(checkIn.Location, "-"),
					checkIn.ClockIn.Date, checkIn.ClockIn.Time,
					checkIn.Status,
					fallback(checkIn.Duration, "-"),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "number of entries")
	return cmd
}

// newStatsCmd aggregates the dashboard's stat cards: account counters plus
// today's check-in counters.
func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			userStats, err := app.client.UserStats(ctx)
			if err != nil {
				return commandError(err)
			}
			todayCount, err := app.client.TodayCheckInCount(ctx)
			if err != nil {
				return commandError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Accounts:        %d (%s %d, %s %d)\n",
				userStats.Total,
				fallback(userStats.Employees.Label, "employees"), userStats.Employees.Count,
				fallback(userStats.Administrators.Label, "administrators"), userStats.Administrators.Count,
			)
			fmt.Fprintf(out, "Check-ins today: %d (%s %d, %s %d)\n",
				todayCount.Total,
				fallback(todayCount.Details.Completed.Label, "completed"), todayCount.Details.Completed.Count,
				fallback(todayCount.Details.InProgress.Label, "in progress"), todayCount.Details.InProgress.Count,
			)
			return nil
		},
	}
}
