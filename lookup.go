package main

import (
	"context"
	"fmt"
	"foremanbot/internal/adapters/foreman"
	"foremanbot/internal/config"
	"foremanbot/internal/core/domain"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <hostname>",
	Short: "Look up a single host in Foreman and print the reply the bot would send",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForeman(); err != nil {
		return err
	}
	cfg.SetupLogging()

	client := foreman.NewClient(cfg.Foreman.URL, cfg.Foreman.Username, cfg.Foreman.Password,
		foreman.WithHTTPClient(&http.Client{Timeout: cfg.Bot.Timeout}))

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Bot.Timeout)
	defer cancel()

	result, err := client.Lookup(ctx, domain.NewLookupQuery(strings.Join(args, " ")))
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), domain.FormatLookup(domain.LookupFailed{Err: err}, ""))
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), domain.FormatLookup(result, ""))
	return nil
}
