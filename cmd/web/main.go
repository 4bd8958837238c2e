package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	zlog "github.com/bigredeye/forfeits/pkg/log"

	"github.com/bigredeye/forfeits/internal/web"
)

func run() error {
	logger := zlog.InitDev()
	defer zlog.Sync()

	return web.Run(logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
