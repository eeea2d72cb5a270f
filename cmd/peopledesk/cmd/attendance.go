package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/service"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record today's check-in",
	Long: `Record today's check-in for the logged-in user.

Check-ins after the late threshold (default 09:30, configurable in company
settings) are marked late. A second check-in on the same day is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.requireAuth()
		if err != nil {
			return err
		}

		att := service.NewAttendanceService(a.store, a.cfg.LateThreshold, a.logger)
		rec, err := att.CheckIn(user.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Checked in at %s (%s)\n", rec.CheckIn.Format("15:04"), rec.Status)
		return nil
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Record today's check-out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.requireAuth()
		if err != nil {
			return err
		}

		att := service.NewAttendanceService(a.store, a.cfg.LateThreshold, a.logger)
		rec, err := att.CheckOut(user.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Checked out at %s (%.1f hours)\n", rec.CheckOut.Format("15:04"), rec.WorkedHours)
		return nil
	},
}

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Attendance history and monthly stats",
}

var (
	attHistoryUser  string
	attHistoryLimit int
)

var attendanceHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show attendance history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		userID, err := resolveSubjectUser(a, attHistoryUser)
		if err != nil {
			return err
		}

		att := service.NewAttendanceService(a.store, a.cfg.LateThreshold, a.logger)
		records, err := att.History(userID, attHistoryLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No attendance records.")
			return nil
		}
		for _, r := range records {
			out := "-"
			if r.CheckOut != nil {
				out = r.CheckOut.Format("15:04")
			}
			fmt.Printf("%s  in %s  out %-5s  %s\n", r.Date, r.CheckIn.Format("15:04"), out, r.Status)
		}
		return nil
	},
}

var (
	attStatsUser  string
	attStatsMonth string
)

var attendanceStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Monthly attendance summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		userID, err := resolveSubjectUser(a, attStatsUser)
		if err != nil {
			return err
		}

		month := attStatsMonth
		if month == "" {
			month = time.Now().Format("2006-01")
		}

		att := service.NewAttendanceService(a.store, a.cfg.LateThreshold, a.logger)
		stats, err := att.MonthStats(userID, month)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d present, %d late, %d absent\n", month, stats.Present, stats.Late, stats.Absent)
		return nil
	},
}

// resolveSubjectUser returns the user a record query applies to. Viewing
// another user's records requires manager or hr.
func resolveSubjectUser(a *app, flagUser string) (string, error) {
	user, err := a.requireAuth()
	if err != nil {
		return "", err
	}
	if flagUser == "" || flagUser == user.ID {
		return user.ID, nil
	}
	if _, err := a.requireAnyRole(auth.RoleManager, auth.RoleHR); err != nil {
		return "", err
	}
	return flagUser, nil
}

func init() {
	attendanceHistoryCmd.Flags().StringVar(&attHistoryUser, "user", "", "user ID (default: yourself; others require manager/hr)")
	attendanceHistoryCmd.Flags().IntVar(&attHistoryLimit, "limit", 30, "max records to show")

	attendanceStatsCmd.Flags().StringVar(&attStatsUser, "user", "", "user ID (default: yourself; others require manager/hr)")
	attendanceStatsCmd.Flags().StringVar(&attStatsMonth, "month", "", "month as YYYY-MM (default: current)")

	attendanceCmd.AddCommand(attendanceHistoryCmd, attendanceStatsCmd)
	rootCmd.AddCommand(checkinCmd, checkoutCmd, attendanceCmd)
}
