package cmd

import (
	"github.com/spf13/cobra"
)

// defaultUser owns the ledger when --user is not given.
const defaultUser = "local"

var rootCmd = &cobra.Command{
	Use:   "careerquest",
	Short: "Skill-building games mapped to career paths",
	Long: "CareerQuest records mini-game rounds as skill XP, matches the result " +
		"against a career catalog and explains it with short insights.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CAREERQUEST_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides CAREERQUEST_CONFIG env var)")
	rootCmd.PersistentFlags().StringP("user", "u", defaultUser, "User whose ledger to read and write")
	rootCmd.PersistentFlags().Bool("json", false, "Print machine-readable JSON instead of styled text")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(careersCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
