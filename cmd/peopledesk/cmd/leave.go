package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
	"github.com/peopledesk/peopledesk/internal/service"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Request, approve, and track leave",
}

var (
	leaveReqType   string
	leaveReqFrom   string
	leaveReqTo     string
	leaveReqReason string
)

var leaveRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request leave",
	Long: `Request leave for the logged-in user.

Leave types sick, casual, and paid draw from the user's balance; unpaid
leave does not. Requests exceeding the remaining balance are rejected.

Example:
  peopledesk leave request --type casual --from 2026-09-01 --to 2026-09-03 --reason "family event"`,
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

		lv := service.NewLeaveService(a.store, a.logger)
		req, err := lv.Request(user.ID, hr.LeaveType(leaveReqType), leaveReqFrom, leaveReqTo, leaveReqReason)
		if err != nil {
			return err
		}
		fmt.Printf("Requested %d day(s) of %s leave (%s)\n", req.Days, req.Type, req.ID)
		return nil
	},
}

var leaveApproveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve a pending request (manager, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		approver, err := a.requireAnyRole(auth.RoleManager, auth.RoleHR)
		if err != nil {
			return err
		}

		lv := service.NewLeaveService(a.store, a.logger)
		req, err := lv.Approve(args[0], approver.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Approved: %d day(s) of %s leave for user %s\n", req.Days, req.Type, req.UserID)
		return nil
	},
}

var leaveRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a pending request (manager, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		approver, err := a.requireAnyRole(auth.RoleManager, auth.RoleHR)
		if err != nil {
			return err
		}

		lv := service.NewLeaveService(a.store, a.logger)
		req, err := lv.Reject(args[0], approver.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Rejected request %s\n", req.ID)
		return nil
	},
}

var (
	leaveListUser   string
	leaveListStatus string
)

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		userID := leaveListUser
		if leaveListUser == "all" {
			// Approvers see the whole queue.
			if _, err := a.requireAnyRole(auth.RoleManager, auth.RoleHR); err != nil {
				return err
			}
			userID = ""
		} else {
			userID, err = resolveSubjectUser(a, leaveListUser)
			if err != nil {
				return err
			}
		}

		lv := service.NewLeaveService(a.store, a.logger)
		requests, err := lv.List(userID, hr.LeaveStatus(leaveListStatus))
		if err != nil {
			return err
		}
		if len(requests) == 0 {
			fmt.Println("No leave requests.")
			return nil
		}
		for _, r := range requests {
			fmt.Printf("%-36s  %-6s  %s..%s  %dd  %s\n", r.ID, r.Type, r.From, r.To, r.Days, r.Status)
		}
		return nil
	},
}

var leaveBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the remaining leave balance",
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

		lv := service.NewLeaveService(a.store, a.logger)
		balance, err := lv.Balance(user.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Sick: %d  Casual: %d  Paid: %d\n", balance.Sick, balance.Casual, balance.Paid)
		return nil
	},
}

func init() {
	leaveRequestCmd.Flags().StringVar(&leaveReqType, "type", "", "leave type: sick, casual, paid, unpaid (required)")
	leaveRequestCmd.Flags().StringVar(&leaveReqFrom, "from", "", "first day, YYYY-MM-DD (required)")
	leaveRequestCmd.Flags().StringVar(&leaveReqTo, "to", "", "last day inclusive, YYYY-MM-DD (required)")
	leaveRequestCmd.Flags().StringVar(&leaveReqReason, "reason", "", "reason for the request")
	_ = leaveRequestCmd.MarkFlagRequired("type")
	_ = leaveRequestCmd.MarkFlagRequired("from")
	_ = leaveRequestCmd.MarkFlagRequired("to")

	leaveListCmd.Flags().StringVar(&leaveListUser, "user", "", `user ID, or "all" for every user (default: yourself)`)
	leaveListCmd.Flags().StringVar(&leaveListStatus, "status", "", "filter: pending, approved, rejected")

	leaveCmd.AddCommand(leaveRequestCmd, leaveApproveCmd, leaveRejectCmd, leaveListCmd, leaveBalanceCmd)
	rootCmd.AddCommand(leaveCmd)
}
