package main

import (
	"context"
	"os"

	"github.com/sandevgo/tuskchat/internal/config"
	"github.com/sandevgo/tuskchat/internal/service/ui"
	"github.com/sandevgo/tuskchat/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug       bool
	runtimePath string
	userID      string
)

var rootCmd = &cobra.Command{
	Use:   "tuskchat",
	Short: "TuskChat: a chat front-end with persistent history",
	Long: `TuskChat forwards your messages to a language model and keeps the
most recent turns of each conversation in a key-value list store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags win over .env: godotenv.Load never overrides variables already set
		if runtimePath != "" {
			if err := os.Setenv("TUSK_RUNTIME_PATH", runtimePath); err != nil {
				return err
			}
		}
		if userID != "" {
			return os.Setenv("TUSK_USER_ID", userID)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&runtimePath, "runtime", "", "runtime directory (default ~/.tuskchat)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "conversation identity (default from TUSK_USER_ID)")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{.UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}{{if .HasAvailableInheritedFlags}}{{StyleTitle "GLOBAL FLAGS"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
