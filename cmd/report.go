package cmd

import (
	"fmt"
	"time"

	"github.com/naka-gawa/grass-reporter/internal/config"
	"github.com/naka-gawa/grass-reporter/internal/gateway"
	"github.com/naka-gawa/grass-reporter/internal/notifier"
	"github.com/naka-gawa/grass-reporter/internal/usecase"
	"github.com/spf13/cobra"
)

// clock is the reporter's time source.
var clock = time.Now

func runReport(cmd *cobra.Command, args []string) error {
	// Configuration is validated before any client exists, so a bad
	// environment never reaches the network.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, verbose)

	var token string
	if len(args) > 0 {
		token = args[0]
	}
	mode := usecase.ParseMode(token)

	// Inject dependencies and run the main business logic.
	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, cfg.GitHubGraphQLURL, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	var n notifier.Notifier = notifier.NewDiscordWebhook(cfg.DiscordWebhookURL, cfg.DiscordUserID, logger)
	if dryRun {
		n = notifier.NewDryRun(cfg.DiscordUserID, logger)
	}

	reporter := usecase.NewReporter(githubGateway, n, cfg.GitHubUsername, usecase.Options{
		EnableGrassCheck:  cfg.EnableGrassCheck,
		EnableDailyStreak: cfg.EnableDailyStreak,
		Clock:             clock,
	}, logger)

	return reporter.Run(cmd.Context(), mode)
}
