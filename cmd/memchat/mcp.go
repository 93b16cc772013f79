package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/memchat/internal/transport/mcpserver"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve chat and memory tools over MCP on stdio",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ctx, flushLog, err := setupFileLogger(ctx)
		if err != nil {
			return err
		}
		defer flushLog()

		d, err := newDeps(ctx, true)
		if err != nil {
			return err
		}

		session := d.newSession()
		log.FromCtx(ctx).Info().
			Str("session_id", session.ID).
			Str("user_id", session.UserID).
			Msg("serving mcp on stdio")

		return mcpserver.New(session).Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
