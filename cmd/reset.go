package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slggamerTrue/languageLearning/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved assessment data",
	Long:  "Remove the saved conversation, profile, and plans. The next assessment starts from scratch.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		kv, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer kv.Close()

		keys := []string{
			store.KeyConversation,
			store.KeyProfile,
			store.KeyTotalPlan,
			store.KeyWeeklyPlan,
		}
		for _, key := range keys {
			if err := kv.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		fmt.Println("Assessment data cleared.")
		return nil
	},
}
