package main

import (
	"log"
	"os"

	"minihttp/internal/bootstrap"
	"minihttp/internal/config"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	conf, err := config.MustLoad()
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}

	app, err := bootstrap.New(conf)
	if err != nil {
		log.Fatalf("Failed to initialize: %s", err)
	}

	if err = app.Run(); err != nil {
		log.Fatalf("Server stopped: %s", err)
	}
}
