package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/service/installer"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Write the memchat configuration",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()
		logger.Info().Str("path", runtimePath).Msg("starting installation process")

		// run wizard (includes save step)
		state, err := installer.RunWizard(runtimePath)
		if err != nil {
			return err
		}

		envPath := config.GetEnvPath()
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		next := "memchat stateless"
		if state.Memory {
			next = "memchat memory"
		}
		if state.Telegram {
			next = "memchat telegram"
			if state.Memory {
				next += " --memory"
			}
		}
		logger.Info().Msgf("Installation complete! You can now run '%s'.", next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
