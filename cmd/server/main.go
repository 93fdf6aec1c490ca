package main

import (
	"context"
	"log"

	"github.com/pokebox/pokebox/internal/server"
	"github.com/pokebox/pokebox/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
