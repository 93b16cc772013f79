package main

import (
	"github.com/sandevgo/memchat/internal/service/command"
	"github.com/sandevgo/memchat/internal/transport/tui"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/spf13/cobra"
)

var statelessCmd = &cobra.Command{
	Use:          "stateless",
	Short:        "Chat without memory",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, false)
	},
}

var memoryCmd = &cobra.Command{
	Use:          "memory",
	Short:        "Chat with long-term memory",
	Long:         `Every message is stored in the memory server and relevant memories are added to the prompt.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, true)
	},
}

func runChat(cmd *cobra.Command, withMemory bool) error {
	ctx, flushLog, err := setupFileLogger(cmd.Context())
	if err != nil {
		return err
	}
	defer flushLog()

	d, err := newDeps(ctx, withMemory)
	if err != nil {
		return err
	}

	session := d.newSession()
	log.FromCtx(ctx).Info().
		Str("session_id", session.ID).
		Stringer("mode", session.Mode()).
		Str("model", session.Model()).
		Msg("chat started")

	return tui.Run(ctx, tui.Options{
		Session:     session,
		Router:      command.NewDefault(),
		TypingSpeed: d.app.TypingSpeed,
		Region:      d.app.Region,
		ServerURL:   d.serverURL(),
	})
}

func init() {
	rootCmd.AddCommand(statelessCmd, memoryCmd)
}
