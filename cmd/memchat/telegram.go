package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/service/command"
	"github.com/sandevgo/memchat/internal/transport/telegram"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/sandevgo/memchat/pkg/srv"
	"github.com/spf13/cobra"
)

var telegramMemory bool

var telegramCmd = &cobra.Command{
	Use:          "telegram",
	Short:        "Run the Telegram bot",
	Long:         `Serves the bot owner until interrupted. Each Telegram chat gets its own session.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctx, flushLog := setupLogger(ctx)
		logger := log.FromCtx(ctx)

		d, err := newDeps(ctx, telegramMemory)
		if err != nil {
			flushLog()
			return err
		}
		if !d.app.EnableTelegram {
			logger.Warn().Msg("ENABLE_TELEGRAM is not set, starting the bot anyway")
		}

		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, command.NewDefault(), d.newSession)
		if err != nil {
			flushLog()
			return err
		}

		// shut down in reverse: the bot first, the log last
		services := []srv.Service{
			srv.NewCleanupFunc(func() {
				logger.Info().Msg("memchat has been shut down gracefully")
				flushLog()
			}),
			bot,
		}

		logger.Info().Bool("memory", telegramMemory).Msg("starting memchat telegram bot")
		go func() {
			for err := range srv.StartServices(ctx, services) {
				logger.Error().Err(err).Msg("service stopped")
				stop()
			}
		}()

		return srv.ShutdownServices(ctx, services)
	},
}

func init() {
	telegramCmd.Flags().BoolVar(&telegramMemory, "memory", false, "use the memory server")
	rootCmd.AddCommand(telegramCmd)
}
