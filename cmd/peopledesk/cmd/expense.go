package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
	"github.com/peopledesk/peopledesk/internal/service"
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Submit and settle expense claims",
}

var (
	expSubmitCategory    string
	expSubmitAmount      string
	expSubmitDate        string
	expSubmitDescription string
)

var expenseSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an expense claim",
	Long: `Submit an expense claim for the logged-in user. Claims start pending
and move to approved (then paid) or rejected.

Example:
  peopledesk expense submit --category travel --amount 1250.50 --date 2026-08-20 --description "client visit"`,
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

		amount, err := decimal.NewFromString(expSubmitAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", expSubmitAmount, err)
		}

		ex := service.NewExpenseService(a.store, a.logger)
		claim, err := ex.Submit(user.ID, hr.ExpenseCategory(expSubmitCategory), amount, expSubmitDate, expSubmitDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted %s claim for %s (%s)\n", claim.Category, claim.Amount.StringFixed(2), claim.ID)
		return nil
	},
}

func expenseDecisionCmd(use, short string, next hr.ExpenseStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			decider, err := a.requireAnyRole(auth.RoleManager)
			if err != nil {
				return err
			}

			ex := service.NewExpenseService(a.store, a.logger)
			claim, err := ex.Transition(args[0], next, decider.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Claim %s is now %s\n", claim.ID, claim.Status)
			return nil
		},
	}
}

var (
	expListUser   string
	expListStatus string
)

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expense claims",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		userID := expListUser
		if expListUser == "all" {
			if _, err := a.requireAnyRole(auth.RoleManager); err != nil {
				return err
			}
			userID = ""
		} else {
			userID, err = resolveSubjectUser(a, expListUser)
			if err != nil {
				return err
			}
		}

		ex := service.NewExpenseService(a.store, a.logger)
		claims, err := ex.List(userID, hr.ExpenseStatus(expListStatus))
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Println("No expense claims.")
			return nil
		}
		for _, c := range claims {
			fmt.Printf("%-36s  %-15s  %10s  %s  %s\n", c.ID, c.Category, c.Amount.StringFixed(2), c.Date, c.Status)
		}
		return nil
	},
}

var expensePendingCmd = &cobra.Command{
	Use:   "pending-total",
	Short: "Total amount awaiting approval (manager)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleManager); err != nil {
			return err
		}

		ex := service.NewExpenseService(a.store, a.logger)
		total, err := ex.PendingTotal()
		if err != nil {
			return err
		}
		fmt.Println(total.StringFixed(2))
		return nil
	},
}

func init() {
	expenseSubmitCmd.Flags().StringVar(&expSubmitCategory, "category", "", "category: travel, food, accommodation, office_supplies, other (required)")
	expenseSubmitCmd.Flags().StringVar(&expSubmitAmount, "amount", "", "claim amount, e.g. 1250.50 (required)")
	expenseSubmitCmd.Flags().StringVar(&expSubmitDate, "date", "", "expense date, YYYY-MM-DD (required)")
	expenseSubmitCmd.Flags().StringVar(&expSubmitDescription, "description", "", "what the expense was for")
	_ = expenseSubmitCmd.MarkFlagRequired("category")
	_ = expenseSubmitCmd.MarkFlagRequired("amount")
	_ = expenseSubmitCmd.MarkFlagRequired("date")

	expenseListCmd.Flags().StringVar(&expListUser, "user", "", `user ID, or "all" for every user (default: yourself)`)
	expenseListCmd.Flags().StringVar(&expListStatus, "status", "", "filter: pending, approved, rejected, paid")

	expenseCmd.AddCommand(
		expenseSubmitCmd,
		expenseDecisionCmd("approve <claim-id>", "Approve a pending claim (manager)", hr.ExpenseApproved),
		expenseDecisionCmd("reject <claim-id>", "Reject a pending claim (manager)", hr.ExpenseRejected),
		expenseDecisionCmd("pay <claim-id>", "Mark an approved claim paid (manager)", hr.ExpensePaid),
		expenseListCmd,
		expensePendingCmd,
	)
	rootCmd.AddCommand(expenseCmd)
}
