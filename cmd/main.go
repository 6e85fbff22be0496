package main

import (
	"log"

	"github.com/AntonikaS/floodradar-drypath-map/internal/app"
	"github.com/AntonikaS/floodradar-drypath-map/pkg/config"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalln("failed to load config: ", err)
	}

	app.Run(cfg)
}
