package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate a fresh store with demo data",
	Long: `Populate a fresh store with the demo dataset: an admin account,
sample employees, departments, designations, and company settings.

A store that already contains users is left untouched.

Demo credentials:
  admin@hrms.com / admin123        (admin)
  john.doe@hrms.com / employee123  (employee)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := seed.Run(a.store, a.logger); err != nil {
			return err
		}
		fmt.Println("Seed complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
