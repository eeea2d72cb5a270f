package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Company settings, departments, audit log",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show company settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		company, err := set.Company()
		if err != nil {
			return err
		}
		fmt.Println(company.Name)
		if company.Email != "" {
			fmt.Printf("  Email:          %s\n", company.Email)
		}
		if company.Phone != "" {
			fmt.Printf("  Phone:          %s\n", company.Phone)
		}
		if company.Address != "" {
			fmt.Printf("  Address:        %s\n", company.Address)
		}
		fmt.Printf("  Working hours:  %s - %s\n", company.WorkingHours.Start, company.WorkingHours.End)
		if len(company.Weekends) > 0 {
			fmt.Printf("  Weekends:       %s\n", strings.Join(company.Weekends, ", "))
		}
		fmt.Printf("  Late after:     %s\n", company.LateThreshold)
		return nil
	},
}

var (
	setName          string
	setEmail         string
	setPhone         string
	setAddress       string
	setStart         string
	setEnd           string
	setLateThreshold string
)

var settingsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update company settings (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.requireAnyRole()
		if err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		company, err := set.Company()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			company.Name = setName
		}
		if cmd.Flags().Changed("email") {
			company.Email = setEmail
		}
		if cmd.Flags().Changed("phone") {
			company.Phone = setPhone
		}
		if cmd.Flags().Changed("address") {
			company.Address = setAddress
		}
		if cmd.Flags().Changed("start") {
			company.WorkingHours.Start = setStart
		}
		if cmd.Flags().Changed("end") {
			company.WorkingHours.End = setEnd
		}
		if cmd.Flags().Changed("late-threshold") {
			company.LateThreshold = setLateThreshold
		}

		if err := set.UpdateCompany(actor.ID, *company); err != nil {
			return err
		}
		fmt.Println("Updated.")
		return nil
	},
}

var settingsDepartmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List departments",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		departments, err := set.Departments()
		if err != nil {
			return err
		}
		for _, d := range departments {
			fmt.Println(d.Name)
		}
		return nil
	},
}

var settingsAddDeptCmd = &cobra.Command{
	Use:   "add-department <name>",
	Short: "Add a department (admin, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.requireAnyRole(auth.RoleHR)
		if err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		dept, err := set.AddDepartment(actor.ID, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added %s\n", dept.Name)
		return nil
	},
}

var settingsRemoveDeptCmd = &cobra.Command{
	Use:   "remove-department <name>",
	Short: "Remove a department (admin, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.requireAnyRole(auth.RoleHR)
		if err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		if err := set.RemoveDepartment(actor.ID, args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

var settingsDesignationsCmd = &cobra.Command{
	Use:   "designations",
	Short: "List designations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		designations, err := set.Designations()
		if err != nil {
			return err
		}
		for _, d := range designations {
			fmt.Println(d.Name)
		}
		return nil
	},
}

var settingsAddDesigCmd = &cobra.Command{
	Use:   "add-designation <name>",
	Short: "Add a designation (admin, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.requireAnyRole(auth.RoleHR)
		if err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		desig, err := set.AddDesignation(actor.ID, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added %s\n", desig.Name)
		return nil
	},
}

var settingsHolidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the holiday calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		holidays, err := set.Holidays()
		if err != nil {
			return err
		}
		if len(holidays) == 0 {
			fmt.Println("No holidays.")
			return nil
		}
		for _, h := range holidays {
			fmt.Printf("%s  %s\n", h.Date, h.Name)
		}
		return nil
	},
}

var holidayDate string

var settingsAddHolidayCmd = &cobra.Command{
	Use:   "add-holiday <name>",
	Short: "Add a holiday (admin, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.requireAnyRole(auth.RoleHR)
		if err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		holiday, err := set.AddHoliday(actor.ID, args[0], holidayDate)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s on %s\n", holiday.Name, holiday.Date)
		return nil
	},
}

var settingsRemoveHolidayCmd = &cobra.Command{
	Use:   "remove-holiday <date>",
	Short: "Remove a holiday by date (admin, hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.requireAnyRole(auth.RoleHR)
		if err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		if err := set.RemoveHoliday(actor.ID, args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

var settingsAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the settings audit log (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(); err != nil {
			return err
		}

		set := service.NewSettingsService(a.store, a.logger)
		entries, err := set.AuditLog()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No audit entries.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-36s  %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Actor, e.Action)
		}
		return nil
	},
}

func init() {
	settingsUpdateCmd.Flags().StringVar(&setName, "name", "", "company name")
	settingsUpdateCmd.Flags().StringVar(&setEmail, "email", "", "company email")
	settingsUpdateCmd.Flags().StringVar(&setPhone, "phone", "", "company phone")
	settingsUpdateCmd.Flags().StringVar(&setAddress, "address", "", "company address")
	settingsUpdateCmd.Flags().StringVar(&setStart, "start", "", "working hours start, HH:MM")
	settingsUpdateCmd.Flags().StringVar(&setEnd, "end", "", "working hours end, HH:MM")
	settingsUpdateCmd.Flags().StringVar(&setLateThreshold, "late-threshold", "", "check-in cutoff, HH:MM")
	settingsAddHolidayCmd.Flags().StringVar(&holidayDate, "date", "", "holiday date, YYYY-MM-DD")
	_ = settingsAddHolidayCmd.MarkFlagRequired("date")

	settingsCmd.AddCommand(
		settingsShowCmd,
		settingsUpdateCmd,
		settingsDepartmentsCmd,
		settingsAddDeptCmd,
		settingsRemoveDeptCmd,
		settingsDesignationsCmd,
		settingsAddDesigCmd,
		settingsHolidaysCmd,
		settingsAddHolidayCmd,
		settingsRemoveHolidayCmd,
		settingsAuditCmd,
	)
	rootCmd.AddCommand(settingsCmd)
}
