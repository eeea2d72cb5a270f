package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
	"github.com/peopledesk/peopledesk/internal/service"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Assign shifts and view rosters",
}

var (
	shiftAssignUser string
	shiftAssignDate string
	shiftAssignType string
)

var shiftAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a shift (manager)",
	Long: `Assign a shift to a user for a date. A user holds at most one shift
per date; assigning again replaces it.

Example:
  peopledesk shift assign --user <id> --date 2026-09-01 --type morning`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleManager); err != nil {
			return err
		}

		sh := service.NewShiftService(a.store, a.logger)
		assignment, err := sh.Assign(shiftAssignUser, shiftAssignDate, hr.ShiftType(shiftAssignType))
		if err != nil {
			return err
		}
		fmt.Printf("Assigned %s shift on %s to user %s\n", assignment.Shift, assignment.Date, assignment.UserID)
		return nil
	},
}

var shiftRosterDate string

var shiftRosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Show the roster for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		date := shiftRosterDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		sh := service.NewShiftService(a.store, a.logger)
		roster, err := sh.Roster(date)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			fmt.Printf("No shifts on %s.\n", date)
			return nil
		}
		for _, s := range roster {
			fmt.Printf("%-36s  %s\n", s.UserID, s.Shift)
		}
		return nil
	},
}

var shiftMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show your shift assignments",
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

		sh := service.NewShiftService(a.store, a.logger)
		assignments, err := sh.ForUser(user.ID)
		if err != nil {
			return err
		}
		if len(assignments) == 0 {
			fmt.Println("No shifts assigned.")
			return nil
		}
		for _, s := range assignments {
			fmt.Printf("%s  %s\n", s.Date, s.Shift)
		}
		return nil
	},
}

func init() {
	shiftAssignCmd.Flags().StringVar(&shiftAssignUser, "user", "", "user ID (required)")
	shiftAssignCmd.Flags().StringVar(&shiftAssignDate, "date", "", "date, YYYY-MM-DD (required)")
	shiftAssignCmd.Flags().StringVar(&shiftAssignType, "type", "", "shift: morning, evening, night, general (required)")
	_ = shiftAssignCmd.MarkFlagRequired("user")
	_ = shiftAssignCmd.MarkFlagRequired("date")
	_ = shiftAssignCmd.MarkFlagRequired("type")

	shiftRosterCmd.Flags().StringVar(&shiftRosterDate, "date", "", "date, YYYY-MM-DD (default: today)")

	shiftCmd.AddCommand(shiftAssignCmd, shiftRosterCmd, shiftMineCmd)
	rootCmd.AddCommand(shiftCmd)
}
