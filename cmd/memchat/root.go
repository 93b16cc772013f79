package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/service/ui"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "memchat",
	Short: "memchat: Bedrock chatbots with and without long-term memory",
	Long: `memchat talks to AWS Bedrock foundation models. In memory mode every
message is stored in a MemMachine server and relevant memories are fed back
into the prompt.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}

// setupFileLogger is used whenever stdout belongs to something else: the
// terminal UI or the MCP stdio transport.
func setupFileLogger(ctx context.Context) (context.Context, func(), error) {
	isDebug := debug || config.IsDebug()
	ctx, flush, err := log.NewContextWithFile(ctx, config.GetLogPath(), isDebug)
	if err != nil {
		return ctx, flush, fmt.Errorf("setup logger: %w", err)
	}
	return ctx, flush, nil
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{StyleFlag (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}{{if .HasAvailableInheritedFlags}}{{StyleTitle "GLOBAL FLAGS"}}
{{StyleFlag (.InheritedFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
