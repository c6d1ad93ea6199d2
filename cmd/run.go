package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slggamerTrue/languageLearning/internal/api"
	"github.com/slggamerTrue/languageLearning/internal/app"
	"github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/llm"
	"github.com/slggamerTrue/languageLearning/internal/logging"
	"github.com/slggamerTrue/languageLearning/internal/store"
)

// runApp opens the store, builds the transport, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	debug, _ := cmd.Flags().GetBool("debug")

	logger, cleanup, err := logging.NewFileLogger(logging.DefaultLogPath(), debug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer cleanup()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	kv, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	var transport assessment.Transport
	if baseURL, _ := cmd.Flags().GetString("api"); baseURL != "" {
		transport = api.NewClient(baseURL)
	} else {
		provider, err := llm.NewProviderFromEnv(ctx, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Set ENGTUTOR_LLM_PROVIDER and an API key, or pass --api to use a remote server.")
			return err
		}
		transport = assessment.NewService(provider)
	}

	return app.Run(app.Deps{
		Transport: transport,
		KV:        kv,
		Logger:    logger,
	})
}
