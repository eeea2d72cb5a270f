package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/service"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage the employee directory",
}

var (
	empAddEmail       string
	empAddPassword    string
	empAddRole        string
	empAddFirstName   string
	empAddLastName    string
	empAddPhone       string
	empAddDepartment  string
	empAddDesignation string
	empAddJoiningDate string
)

var employeeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee (admin, hr)",
	Long: `Add an employee to the directory. New employees receive the default
leave balance.

Example:
  peopledesk employee add --email jane@hrms.com --password secret123 \
    --first-name Jane --last-name Roe --role employee --department Engineering`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		dir := service.NewDirectoryService(a.store, a.logger)
		user, err := dir.CreateEmployee(service.CreateEmployeeInput{
			Email:       empAddEmail,
			Password:    empAddPassword,
			Role:        auth.Role(empAddRole),
			FirstName:   empAddFirstName,
			LastName:    empAddLastName,
			Phone:       empAddPhone,
			Department:  empAddDepartment,
			Designation: empAddDesignation,
			JoiningDate: empAddJoiningDate,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added %s <%s> (%s)\n", user.FullName(), user.Email, user.ID)
		return nil
	},
}

var empListDepartment string

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		dir := service.NewDirectoryService(a.store, a.logger)
		users, err := dir.ListEmployees(empListDepartment)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No employees.")
			return nil
		}
		for _, u := range users {
			line := fmt.Sprintf("%-36s  %-24s  %-8s", u.ID, u.Email, u.Role)
			if u.Department != "" {
				line += "  " + u.Department
			}
			fmt.Println(strings.TrimRight(line, " "))
		}
		return nil
	},
}

var employeeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		dir := service.NewDirectoryService(a.store, a.logger)
		u, err := dir.GetEmployee(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", u.FullName(), u.Email)
		fmt.Printf("  ID:          %s\n", u.ID)
		fmt.Printf("  Role:        %s\n", u.Role)
		if u.Department != "" {
			fmt.Printf("  Department:  %s\n", u.Department)
		}
		if u.Designation != "" {
			fmt.Printf("  Designation: %s\n", u.Designation)
		}
		return nil
	},
}

var (
	empUpdatePhone       string
	empUpdateDepartment  string
	empUpdateDesignation string
	empUpdateRole        string
)

var employeeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an employee (admin, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		var in service.UpdateEmployeeInput
		if cmd.Flags().Changed("phone") {
			in.Phone = &empUpdatePhone
		}
		if cmd.Flags().Changed("department") {
			in.Department = &empUpdateDepartment
		}
		if cmd.Flags().Changed("designation") {
			in.Designation = &empUpdateDesignation
		}
		if cmd.Flags().Changed("role") {
			role := auth.Role(empUpdateRole)
			in.Role = &role
		}

		dir := service.NewDirectoryService(a.store, a.logger)
		u, err := dir.UpdateEmployee(args[0], in)
		if err != nil {
			return err
		}
		fmt.Printf("Updated %s <%s>\n", u.FullName(), u.Email)
		return nil
	},
}

var employeeRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an employee (admin, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		dir := service.NewDirectoryService(a.store, a.logger)
		if err := dir.DeleteEmployee(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

func init() {
	employeeAddCmd.Flags().StringVar(&empAddEmail, "email", "", "email address (required)")
	employeeAddCmd.Flags().StringVar(&empAddPassword, "password", "", "initial password, min 8 chars (required)")
	employeeAddCmd.Flags().StringVar(&empAddRole, "role", "employee", "role: admin, manager, employee, hr")
	employeeAddCmd.Flags().StringVar(&empAddFirstName, "first-name", "", "first name (required)")
	employeeAddCmd.Flags().StringVar(&empAddLastName, "last-name", "", "last name")
	employeeAddCmd.Flags().StringVar(&empAddPhone, "phone", "", "10-digit phone number")
	employeeAddCmd.Flags().StringVar(&empAddDepartment, "department", "", "department name")
	employeeAddCmd.Flags().StringVar(&empAddDesignation, "designation", "", "job title")
	employeeAddCmd.Flags().StringVar(&empAddJoiningDate, "joining-date", "", "joining date (YYYY-MM-DD)")
	_ = employeeAddCmd.MarkFlagRequired("email")
	_ = employeeAddCmd.MarkFlagRequired("password")
	_ = employeeAddCmd.MarkFlagRequired("first-name")

	employeeListCmd.Flags().StringVar(&empListDepartment, "department", "", "filter by department")

	employeeUpdateCmd.Flags().StringVar(&empUpdatePhone, "phone", "", "10-digit phone number")
	employeeUpdateCmd.Flags().StringVar(&empUpdateDepartment, "department", "", "department name")
	employeeUpdateCmd.Flags().StringVar(&empUpdateDesignation, "designation", "", "job title")
	employeeUpdateCmd.Flags().StringVar(&empUpdateRole, "role", "", "role: admin, manager, employee, hr")

	employeeCmd.AddCommand(employeeAddCmd, employeeListCmd, employeeShowCmd, employeeUpdateCmd, employeeRemoveCmd)
	rootCmd.AddCommand(employeeCmd)
}
