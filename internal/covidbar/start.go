package covidbar

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidbar/internal/covidbar/covid"
	"github.com/ilyalavrinov/covidbar/pkg/bitbar"
)

const colorError = "darkred"

// Start writes the whole plugin output for cfg to out. Units are reported one
// after another and a failing unit does not stop the rest. The returned error
// is about cfg or out only.
func Start(cfg Config, out io.Writer) error {
	provider, err := covid.NewProvider(cfg.Provider)
	if err != nil {
		return err
	}

	var chart covid.Sparkliner = covid.NopSparkline{}
	if cfg.Sparklines {
		chart = covid.Bars{}
	}

	r := &reporter{
		out:       out,
		provider:  provider,
		formatter: covid.Formatter{Chart: chart, Average: cfg.Average},
	}
	return r.run(cfg.Countries, cfg.States)
}

type reporter struct {
	out       io.Writer
	provider  covid.Provider
	formatter covid.Formatter

	err error
}

func (r *reporter) run(countries, states []string) error {
	r.println(iconLine().String())
	r.println(bitbar.Separator)

	for _, country := range countries {
		r.report(country, r.provider.FetchCountry)
	}
	for _, state := range states {
		r.report(state, r.provider.FetchState)
	}

	d := r.provider.Descriptor()
	r.println(bitbar.NewLine("Data: "+d.Name, bitbar.Href(d.CreditURI)).String())
	return r.err
}

func (r *reporter) report(unit string, fetch func(string) (covid.Series, error)) {
	log.WithField("unit", unit).Debug("Fetching covid data")
	series, err := fetch(unit)
	if err == nil && len(series) == 0 {
		err = &covid.FetchError{StatusCode: http.StatusNotFound, Message: "no data for " + unit}
	}
	if err != nil {
		log.WithFields(log.Fields{"unit": unit, "err": err}).Warn("Could not get covid data")
		r.println(errorLine(unit, err).String())
		return
	}
	r.println(r.formatter.Format(series, unit))
}

// println stops writing after the first failed write and keeps that error.
func (r *reporter) println(s string) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintln(r.out, s); err != nil {
		r.err = fmt.Errorf("could not write output: %w", err)
	}
}

func errorLine(unit string, err error) bitbar.Line {
	var fe *covid.FetchError
	if errors.As(err, &fe) {
		text := fmt.Sprintf("%s API error: %d", unit, fe.StatusCode)
		if fe.Message != "" {
			text = fmt.Sprintf("%s: %s", text, fe.Message)
		}
		return bitbar.NewLine(bitbar.Clean(text), bitbar.Color(colorError))
	}
	return bitbar.NewLine(bitbar.Clean(fmt.Sprintf("%s data error: %s", unit, err)), bitbar.Color(colorError))
}
