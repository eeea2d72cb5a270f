// Package cmd provides the CLI commands for PeopleDesk.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/config"
)

var cfgFile string
var dataPath string

var rootCmd = &cobra.Command{
	Use:   "peopledesk",
	Short: "PeopleDesk - local-first HR management",
	Long: `PeopleDesk is a local-first HR management tool.

It keeps employees, attendance, leave, shifts, expenses, recruitment, and
training records in a single data file (or SQLite database), guarded by a
role-based login session.

Quick start:
  1. Seed demo data:  peopledesk seed
  2. Log in:          peopledesk login admin@hrms.com
  3. Look around:     peopledesk whoami && peopledesk stats

Configuration:
  Config is loaded from peopledesk.yaml in the current directory,
  $HOME/.peopledesk/, or /etc/peopledesk/.

  Environment variables can override config values with the PEOPLEDESK_ prefix.
  Example: PEOPLEDESK_STORE_BACKEND=sqlite

Commands:
  login       Authenticate and start a session
  logout      End the current session
  whoami      Show the logged-in identity
  seed        Populate a fresh store with demo data
  reset       Remove the data file and start over
  employee    Manage the employee directory
  checkin     Record today's check-in
  checkout    Record today's check-out
  attendance  Attendance history and monthly stats
  leave       Request, approve, and track leave
  shift       Assign shifts and view rosters
  expense     Submit and settle expense claims
  recruit     Job postings and candidate pipeline
  training    Courses and enrollments
  settings    Company settings, departments, audit log
  stats       Dashboard summary
  config      Inspect and scaffold configuration
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./peopledesk.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "path to the data file (default: ./peopledesk.json)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
