package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"connect_four/internal/connect_four/config"
	server "connect_four/internal/connect_four/handlers"
	"connect_four/internal/connect_four/telemetry"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CONNECT_FOUR] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("starting server on %s", cfg.Addr)
	if err := telemetry.Run(ctx, "connect_four", func(ctx context.Context) error {
		return server.Serve(ctx, cfg)
	}); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
