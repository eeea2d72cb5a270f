package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/service"
)

var statsMetrics bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Dashboard summary (manager, hr)",
	Long: `Show the dashboard summary: headcount, pending approvals, today's
attendance, open jobs, and active enrollments.

With --metrics, also dump the process counters in Prometheus text format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleManager, auth.RoleHR); err != nil {
			return err
		}

		dash := service.NewDashboardService(a.store, a.logger)
		summary, err := dash.Summary()
		if err != nil {
			return err
		}

		fmt.Printf("Headcount:           %d\n", summary.Headcount)
		if len(summary.HeadcountByDept) > 0 {
			depts := make([]string, 0, len(summary.HeadcountByDept))
			for name := range summary.HeadcountByDept {
				depts = append(depts, name)
			}
			sort.Strings(depts)
			for _, name := range depts {
				fmt.Printf("  %-18s %d\n", name+":", summary.HeadcountByDept[name])
			}
		}
		fmt.Printf("Present today:       %d (%d late)\n", summary.PresentToday, summary.LateToday)
		fmt.Printf("Pending leave:       %d\n", summary.PendingLeave)
		fmt.Printf("Pending expenses:    %d\n", summary.PendingExpenses)
		fmt.Printf("Open jobs:           %d\n", summary.OpenJobs)
		fmt.Printf("Active enrollments:  %d\n", summary.ActiveEnrollments)

		if statsMetrics {
			fmt.Println()
			if err := a.metrics.WriteText(os.Stdout); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsMetrics, "metrics", false, "also dump process counters in Prometheus text format")
	rootCmd.AddCommand(statsCmd)
}
