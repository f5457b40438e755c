package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/bot"
	"github.com/domino14/reversi/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Str("nats-url", cfg.GetString(config.ConfigNatsURL)).
		Str("subject", cfg.GetString(config.ConfigBotSubject)).Msg("starting-bot")

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	b := bot.NewBot(cfg)
	go func() {
		if err := bot.Main(cfg.GetString(config.ConfigBotSubject), b); err != nil {
			log.Fatal().Err(err).Msg("bot-failed")
		}
	}()

	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
