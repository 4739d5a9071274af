package main

import (
	"flag"
	"log"

	"github.com/you/classhub/internal/app"
	"github.com/you/classhub/internal/config"
)

func main() {
	path := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
