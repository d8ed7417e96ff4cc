package main

import (
	"log"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/bootstrap"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/server"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
