package covidbar

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gcfg.v1"

	"github.com/ilyalavrinov/covidbar/internal/covidbar/covid"
)

// defaultConfig is compiled into the plugin; edit it and rebuild.
//
// provider is COVID_Tracking or JHU. States are abbreviations for
// COVID_Tracking and full names for JHU. COVID_Tracking only has the "US"
// country, JHU uses its own country spellings.
// average picks the days of the 3 day average: oldest or recent.
const defaultConfig = `
[covid]
provider = COVID_Tracking
state = WA
state = MA
country = US
sparklines = true
average = oldest

[log]
level = warn
`

type fileConfig struct {
	Covid struct {
		Provider   string
		State      []string
		Country    []string
		Sparklines bool
		Average    string
	}

	Log struct {
		Level string
	}
}

// Config is built once at startup and handed to Start.
type Config struct {
	Provider   covid.Descriptor
	States     []string
	Countries  []string
	Sparklines bool
	Average    covid.AverageMode
	LogLevel   log.Level
}

var averageModes = map[string]covid.AverageMode{
	"":       covid.AverageOldest,
	"oldest": covid.AverageOldest,
	"recent": covid.AverageRecent,
}

// NewConfig returns the built-in configuration.
func NewConfig() (Config, error) {
	return ParseConfig(defaultConfig)
}

func ParseConfig(text string) (Config, error) {
	var fc fileConfig
	if err := gcfg.ReadStringInto(&fc, text); err != nil {
		return Config{}, fmt.Errorf("could not parse configuration: %w", err)
	}

	provider, err := covid.LookupDescriptor(covid.ProviderID(fc.Covid.Provider))
	if err != nil {
		return Config{}, err
	}

	average, found := averageModes[fc.Covid.Average]
	if !found {
		return Config{}, fmt.Errorf("unknown average mode %q", fc.Covid.Average)
	}

	level := log.WarnLevel
	if fc.Log.Level != "" {
		level, err = log.ParseLevel(fc.Log.Level)
		if err != nil {
			return Config{}, fmt.Errorf("could not parse log level: %w", err)
		}
	}

	cfg := Config{
		Provider:   provider,
		States:     fc.Covid.State,
		Countries:  fc.Covid.Country,
		Sparklines: fc.Covid.Sparklines,
		Average:    average,
		LogLevel:   level,
	}
	log.WithFields(log.Fields{"provider": provider.ID, "states": cfg.States, "countries": cfg.Countries}).Debug("Configuration has been read")
	return cfg, nil
}
