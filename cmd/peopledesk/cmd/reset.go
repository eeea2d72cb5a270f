package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/config"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the data file and start over",
	Long: `Reset PeopleDesk by removing the data file and its backup.

This deletes every persisted record: employees, attendance, leave, shifts,
expenses, recruitment, training, settings, and the active session. Run
"peopledesk seed" afterwards to restore the demo dataset.

Examples:
  # Interactive confirmation
  peopledesk reset

  # Skip the prompt
  peopledesk reset --force`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dataPath != "" {
		cfg.Store.Path = dataPath
	}
	if cfg.Store.Backend == "memory" {
		fmt.Fprintln(os.Stderr, "Nothing to reset — the memory backend has no data file.")
		return nil
	}

	targets := []string{cfg.Store.Path, cfg.Store.Path + ".bak"}

	var existing []string
	for _, path := range targets {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to reset — no data files found.")
		return nil
	}

	fmt.Fprintln(os.Stderr, "The following will be removed:")
	for _, path := range existing {
		fmt.Fprintf(os.Stderr, "  - %s\n", path)
	}

	if !resetForce {
		fmt.Fprint(os.Stderr, "\nProceed? [y/N] ")
		var answer string
		fmt.Scanln(&answer) //nolint:errcheck // interactive prompt, error irrelevant
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	var failures int
	for _, path := range existing {
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR removing %s: %v\n", path, err)
			failures++
		} else {
			fmt.Fprintf(os.Stderr, "  Removed %s\n", path)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d file(s) could not be removed", failures)
	}

	fmt.Fprintln(os.Stderr, "\nReset complete.")
	return nil
}
