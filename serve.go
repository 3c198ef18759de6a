package main

import (
	"context"
	"fmt"
	"foremanbot/internal/adapters/foreman"
	"foremanbot/internal/adapters/gateway"
	"foremanbot/internal/adapters/handler"
	"foremanbot/internal/adapters/metrics"
	"foremanbot/internal/adapters/server"
	"foremanbot/internal/config"
	"foremanbot/internal/core/domain"
	"foremanbot/internal/core/domain/command"
	"foremanbot/internal/core/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the configured chat platforms and answer lookups",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.SetupLogging()

	log.Info().Msg("starting foremanbot...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	foremanClient := foreman.NewClient(cfg.Foreman.URL, cfg.Foreman.Username, cfg.Foreman.Password,
		foreman.WithHTTPClient(&http.Client{Timeout: cfg.Bot.Timeout}),
		foreman.WithMetrics(m))

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewFind("/f"))

	verifier := service.PlatformVerifier{}
	if cfg.Slack.Enabled() {
		verifier[domain.Slack] = service.NewTokenVerifier(cfg.Slack.VerificationToken)
	}
	if cfg.Telegram.Enabled() {
		if len(cfg.Telegram.AllowedChatIDs) == 0 {
			log.Warn().Msg("telegram.allowed_chat_ids is empty, telegram commands will be ignored")
		}
		verifier[domain.Telegram] = service.NewChatAllowlist(cfg.Telegram.AllowedChatIDs)
	}

	router := service.NewRouter(cfg.Bot.Greetings, commandRegistry, verifier)
	dispatcher := service.NewDispatcher(foremanClient)

	eventHandler := handler.NewEvent(router, dispatcher, cfg.Bot.Workers, cfg.Bot.Timeout, m)
	defer eventHandler.Stop()

	g, gctx := errgroup.WithContext(ctx)

	var serverOpts []server.Option

	if cfg.Slack.Enabled() {
		slackGateway := gateway.NewSlack(cfg.Slack.BotToken, cfg.Slack.AppToken, eventHandler)
		serverOpts = append(serverOpts, server.WithSlashCommands(slackGateway.CommandHandler()))
		g.Go(func() error { return slackGateway.Run(gctx) })
	}

	if cfg.Telegram.Enabled() {
		telegramGateway, err := gateway.NewTelegram(cfg.Telegram.BotToken, eventHandler)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error { return telegramGateway.Run(gctx) })
	}

	httpServer := server.New(cfg.HTTP.Listen, registry, serverOpts...)
	g.Go(func() error { return httpServer.Run(gctx) })

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")

	if err := g.Wait(); err != nil {
		return fmt.Errorf("foremanbot stopped: %w", err)
	}

	log.Info().Msg("foremanbot stopped")
	return nil
}
