package covid

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/gocolly/colly"
	log "github.com/sirupsen/logrus"
)

const (
	failedMessage    = "[Failed]"
	maxMessageLength = 80
)

// download fetches url once. Anything but 200 OK is returned as *FetchError.
func download(url string) ([]byte, error) {
	var body []byte
	status := 0
	var failure *FetchError

	c := colly.NewCollector()
	c.UserAgent = "covidbar"
	c.MaxBodySize = 0 // time series files are larger than colly's default limit
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		failure = &FetchError{Message: failureMessage(nil, err)}
		if r != nil {
			failure.StatusCode = r.StatusCode
			failure.Message = failureMessage(r.Body, err)
		}
	})

	log.WithField("url", url).Debug("Downloading covid data")
	err := c.Visit(url)
	if failure != nil {
		log.WithFields(log.Fields{"url": url, "status": failure.StatusCode, "err": err}).Warn("Download failed")
		return nil, failure
	}
	if err != nil {
		return nil, &FetchError{Message: failureMessage(nil, err)}
	}
	if status != http.StatusOK {
		return nil, &FetchError{StatusCode: status, Message: failureMessage(body, nil)}
	}

	log.WithFields(log.Fields{"url": url, "bytes": len(body)}).Debug("Download finished")
	return body, nil
}

func failureMessage(body []byte, err error) string {
	msg := strings.TrimSpace(string(body))
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[:i])
	}
	if msg == "" && err != nil {
		msg = err.Error()
	}
	if msg == "" {
		return failedMessage
	}
	if r := []rune(msg); len(r) > maxMessageLength {
		msg = string(r[:maxMessageLength])
	}
	return msg
}

func readRecords(body []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header")
	}
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

// readRows parses a csv payload into one column->value map per data row.
// Every column in required must be present in the header.
func readRows(body []byte, required ...string) ([]map[string]string, error) {
	records, err := readRecords(body)
	if err != nil {
		return nil, err
	}

	header := records[0]
	for _, col := range required {
		if columnIndex(header, col) < 0 {
			return nil, fmt.Errorf("csv has no %q column", col)
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[strings.TrimSpace(name)] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
