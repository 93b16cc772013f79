package main

import (
	"errors"
	"fmt"

	"github.com/sandevgo/memchat/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	healthMemory bool
	forgetYes    bool
)

var healthCmd = &cobra.Command{
	Use:          "health",
	Short:        "Test the connection to Bedrock and the memory server",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		d, err := newDeps(ctx, healthMemory)
		if err != nil {
			return err
		}

		failed := 0
		for _, check := range d.newSession().Health(ctx) {
			if check.OK() {
				fmt.Println(ui.UsageStyle.Render("✅ "+check.Name) + "  connected")
				continue
			}
			failed++
			fmt.Println(ui.ErrorStyle.Render("❌ "+check.Name) + "  " + check.Err.Error())
		}
		if failed > 0 {
			return fmt.Errorf("%d connection check(s) failed", failed)
		}
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available Bedrock models",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		d, err := newDeps(ctx, false)
		if err != nil {
			return err
		}

		s := d.newSession()
		for i, m := range s.Catalog() {
			line := fmt.Sprintf("%d. %s  %s", i+1, m.Name, ui.DescStyle.Render(m.ID))
			if m.ID == s.Model() {
				line += ui.UsageStyle.Render("  (default)")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var forgetCmd = &cobra.Command{
	Use:          "forget",
	Short:        "Delete every memory of the configured user",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !forgetYes {
			return errors.New("this deletes all memories of USER_ID, rerun with --yes")
		}

		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		d, err := newDeps(ctx, true)
		if err != nil {
			return err
		}

		if err := d.newSession().Forget(ctx); err != nil {
			return err
		}
		fmt.Println(ui.UsageStyle.Render("All memories of " + d.memory.UserID + " deleted"))
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthMemory, "memory", false, "also test the memory server")
	forgetCmd.Flags().BoolVarP(&forgetYes, "yes", "y", false, "confirm deletion")
	rootCmd.AddCommand(healthCmd, modelsCmd, forgetCmd)
}
