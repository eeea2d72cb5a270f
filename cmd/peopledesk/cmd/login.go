package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate and start a session",
	Long: `Authenticate against the employee directory and start a session.

The session is persisted in the data file and expires after the configured
timeout (default 30 minutes). Logging in while a session is active replaces
it.

Examples:
  # Interactive password prompt
  peopledesk login admin@hrms.com

  # Non-interactive (scripting)
  peopledesk login admin@hrms.com --password admin123`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	password := loginPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	user, err := a.session.Login(args[0], password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.FullName(), user.Role)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in identity",
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
		fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
		fmt.Printf("  Role:        %s\n", user.Role)
		if user.Department != "" {
			fmt.Printf("  Department:  %s\n", user.Department)
		}
		if user.Designation != "" {
			fmt.Printf("  Designation: %s\n", user.Designation)
		}
		if len(user.Permissions) > 0 {
			fmt.Printf("  Permissions: %s\n", strings.Join(user.Permissions, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
