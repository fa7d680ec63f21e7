// Command jira-cleanup scans a Jira project for issues whose
// description carries an attribution line, records each one in a CSV
// report, and strips the line from the remote description.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nhle/jira-cleanup/internal/cleanup"
	"github.com/nhle/jira-cleanup/internal/credential"
	"github.com/nhle/jira-cleanup/internal/jira"
	"github.com/nhle/jira-cleanup/internal/model"
	"github.com/nhle/jira-cleanup/internal/report"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "Path to config YAML file")
	dryRun := flag.Bool("dry-run", false, "Report and scrub without writing back to Jira")
	setToken := flag.Bool("set-token", false, "Store an API token in the system keyring and exit")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	if *setToken {
		if err := storeToken(); err != nil {
			logger.Error("storing token failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(context.Background(), *configPath, *dryRun, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, resolves the API token, and executes one
// cleanup pass. It returns an error for aborting failures and for runs
// where any update was rejected.
func run(ctx context.Context, configPath string, dryRun bool, logger *slog.Logger) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	token, err := resolveToken(cfg)
	if err != nil {
		return err
	}

	client := jira.NewClient(cfg.BaseURL, jira.AuthScheme(cfg.AuthScheme), token)

	// Fail before touching any issue if the credentials are bad.
	name, err := client.Myself(ctx)
	if err != nil {
		return err
	}
	logger.Debug("authenticated", "user", name)

	runner := cleanup.NewRunner(
		jira.NewSearcher(client, cfg.Project, cfg.Marker, cfg.JQL, cfg.PageSize),
		jira.NewUpdater(client),
		report.NewCSV(cfg.ReportPath),
		cleanup.NewScrubber(cfg.Marker),
		logger,
	)
	runner.DryRun = dryRun

	sum, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d updates rejected", sum.Failed, sum.Matched)
	}
	return nil
}

// resolveToken returns the API token from the configured environment
// variable when set, falling back to the system keyring.
func resolveToken(cfg *model.Config) (string, error) {
	if cfg.TokenEnv != "" {
		if token := os.Getenv(cfg.TokenEnv); token != "" {
			return token, nil
		}
	}

	token, err := credential.Get(credential.TokenKey)
	if err != nil {
		if cfg.TokenEnv != "" {
			return "", fmt.Errorf(
				"no API token: set $%s or store one with -set-token: %w",
				cfg.TokenEnv, err,
			)
		}
		return "", fmt.Errorf("no API token: store one with -set-token: %w", err)
	}
	return token, nil
}

// storeToken reads a token from stdin and saves it in the keyring.
func storeToken() error {
	fmt.Fprint(os.Stderr, "API token: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return fmt.Errorf("empty token")
	}

	return credential.Set(credential.TokenKey, token)
}
