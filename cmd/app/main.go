// entry point to app
package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/appServer"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	// .env file is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	appServer.NewServer(viperInstance, cfg)
}
