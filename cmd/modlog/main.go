package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-modlog/internal/attach"
	"go-modlog/internal/bot"
	"go-modlog/internal/commands"
	"go-modlog/internal/config"
	"go-modlog/internal/logging"
	"go-modlog/internal/modlog"
	"go-modlog/internal/notifier"
	"go-modlog/internal/reconcile"
)

func main() {
	cfg := config.LoadOrDefault("config.json")

	if err := logging.InitGlobal(cfg.Logging.Level, cfg.Logging.Path); err != nil {
		fmt.Fprintf(os.Stderr, "logging init failed: %v\n", err)
		os.Exit(1)
	}

	if cfg.Bot.Token == "" {
		logging.Error("No bot token configured; set bot.token in config.json or DISCORD_TOKEN")
		logging.CloseGlobal()
		os.Exit(1)
	}

	session, err := bot.New(cfg.Bot.Token)
	if err != nil {
		logging.Error("Session setup failed: %v", err)
		logging.CloseGlobal()
		os.Exit(1)
	}

	m := modlog.New(
		cfg,
		notifier.New(session.Discord()),
		reconcile.NewRegistry(),
		session,
		attach.NewFetcher(),
	)
	m.Register(session.Discord())

	if err := session.Open(); err != nil {
		logging.Error("Gateway connection failed: %v", err)
		logging.CloseGlobal()
		os.Exit(1)
	}

	if err := commands.Initialize(session); err != nil {
		logging.Error("Command registration failed: %v", err)
	}

	logging.Info("Moderation log running for guild %s", cfg.Guild.ID)

	waitForShutdown()

	if err := session.Close(); err != nil {
		logging.Warn("Session close: %v", err)
	}
	logging.Info("Shutdown complete")
	logging.CloseGlobal()
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
