package cmd

import (
	"github.com/spf13/cobra"

	"github.com/slggamerTrue/languageLearning/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "engtutor",
	Short: "AI English tutor in the terminal",
	Long:  "EngTutor — assessment-driven English tutoring: chat with an AI tutor, get a personalized study plan, and work through study and role-play lessons.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ENGTUTOR_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.Flags().String("api", "", "Base URL of an engtutor server to use instead of a local LLM provider")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ENGTUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
