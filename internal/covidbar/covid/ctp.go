package covid

import (
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"
)

const (
	ctpColDate        = "date"
	ctpColDeathInc    = "deathIncrease"
	ctpColPositiveInc = "positiveIncrease"

	ctpCountry = "US"
)

// ctpProvider reads the COVID Tracking Project daily csv files. They list one
// row per day, most recent first.
type ctpProvider struct {
	desc Descriptor
}

var _ Provider = &ctpProvider{}

func (p *ctpProvider) Descriptor() Descriptor {
	return p.desc
}

func (p *ctpProvider) FetchState(state string) (Series, error) {
	return p.fetch(state, fmt.Sprintf("%s/states/%s/daily.csv", p.desc.DataURI, url.PathEscape(state)))
}

// FetchCountry only knows about the US; other countries fail without a request.
func (p *ctpProvider) FetchCountry(country string) (Series, error) {
	if country != ctpCountry {
		return nil, notFound("%s only has country data for %s", p.desc.Name, ctpCountry)
	}
	return p.fetch(country, fmt.Sprintf("%s/us/daily.csv", p.desc.DataURI))
}

func (p *ctpProvider) fetch(unit, src string) (Series, error) {
	body, err := download(src)
	if err != nil {
		return nil, err
	}

	rows, err := readRows(body, ctpColDate, ctpColDeathInc, ctpColPositiveInc)
	if err != nil {
		return nil, fmt.Errorf("%s data for %s: %w", p.desc.Abbr, unit, err)
	}

	series := make(Series, windowDays)
	for i, row := range rows {
		if i == windowDays {
			break
		}
		day, err := ctpDay(row)
		if err != nil {
			return nil, fmt.Errorf("%s data for %s, row %d: %w", p.desc.Abbr, unit, i+1, err)
		}
		if _, dup := series[day.Date]; dup {
			log.WithFields(log.Fields{"unit": unit, "date": day.Date}).Warn("Duplicate date in daily data, keeping the first row")
			continue
		}
		series[day.Date] = day
	}

	if len(series) == 0 {
		return nil, notFound("no data for %s", unit)
	}
	log.WithFields(log.Fields{"unit": unit, "days": len(series)}).Debug("Read daily data")
	return series, nil
}

func ctpDay(row map[string]string) (Day, error) {
	date, err := normalizeCompactDate(row[ctpColDate])
	if err != nil {
		return Day{}, err
	}
	deaths, err := atoi(row[ctpColDeathInc])
	if err != nil {
		return Day{}, fmt.Errorf("%s: %w", ctpColDeathInc, err)
	}
	cases, err := atoi(row[ctpColPositiveInc])
	if err != nil {
		return Day{}, fmt.Errorf("%s: %w", ctpColPositiveInc, err)
	}
	return Day{Date: date, DeathIncrease: deaths, CaseIncrease: cases}, nil
}
