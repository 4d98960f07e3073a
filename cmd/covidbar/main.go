package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidbar/internal/covidbar"
)

// The host runs the plugin on a schedule and shows whatever it prints to
// stdout, so logs stay on stderr.
func main() {
	log.SetOutput(os.Stderr)

	cfg, err := covidbar.NewConfig()
	if err != nil {
		log.WithField("err", err).Fatal("Plugin cannot be started due to configuration error")
	}
	log.SetLevel(cfg.LogLevel)

	if err := covidbar.Start(cfg, os.Stdout); err != nil {
		log.WithField("err", err).Error("Plugin output is incomplete")
	}
}
