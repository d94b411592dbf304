package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"panda-gate/bff/internal/config"
	"panda-gate/bff/internal/handlers"
	"panda-gate/bff/internal/middleware"
	"panda-gate/bff/internal/podclient"
	"panda-gate/session"
)

func main() {
	configPath := flag.String("config", "", "path to bff config yaml")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Str("tier", "bff").Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	// The edge tier gets the verify-only capability.
	verifier := session.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
	pod := podclient.New(cfg.Pod.BaseURL, time.Duration(cfg.Pod.TimeoutSec)*time.Second)
	h := handlers.New(pod, cfg.Production())
	access := &middleware.Access{Verifier: verifier, Secure: cfg.Production()}

	addr := net.JoinHostPort(cfg.HTTP.Host, fmt.Sprintf("%d", cfg.HTTP.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           handlers.NewRouter(h, access),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", addr).Str("pod", cfg.Pod.BaseURL).Msg("bff listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("bff server")
	}
}
