package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/llm"
	"github.com/slggamerTrue/languageLearning/internal/logging"
	"github.com/slggamerTrue/languageLearning/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  "Serve the assessment and lesson endpoints over HTTP for web and mobile frontends.",
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")

		cfg := server.DefaultConfig()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			var err error
			cfg, err = server.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		cfg.Debug = cfg.Debug || debug

		logger, err := logging.NewServerLogger(cfg.Debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		srv := server.New(cfg, assessment.NewService(provider), logger)
		logger.Info("listening", zap.String("addr", cfg.Addr))
		return srv.Run(cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config file)")
	serveCmd.Flags().String("config", "", "Path to YAML config file")
}
