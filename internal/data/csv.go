// Package data is the time-series adapter: it loads price and solar files
// from disk into the aligned Series form the engine consumes, and hosts the
// result cache used by the API.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"hybrid-bess-sim/internal/timeseries"
)

// LoadSeriesCSV reads a series file with a header row. Required columns:
// timestamp (RFC3339 or "2006-01-02 15:04:05") and price_mwh. An optional
// solar_mw column adds the aligned solar production series.
func LoadSeriesCSV(path string, resolution time.Duration) (*timeseries.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeriesCSV(f, resolution)
}

// ReadSeriesCSV parses CSV series data from a reader.
func ReadSeriesCSV(r io.Reader, resolution time.Duration) (*timeseries.Series, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	tsCol, priceCol, solarCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "timestamp":
			tsCol = i
		case "price_mwh", "price":
			priceCol = i
		case "solar_mw", "solar":
			solarCol = i
		}
	}
	if tsCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("header must contain timestamp and price_mwh columns, got %v", header)
	}

	var (
		timestamps []time.Time
		prices     []float64
		solar      []float64
	)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		ts, err := parseTimestamp(rec[tsCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[priceCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad price %q", line, rec[priceCol])
		}
		timestamps = append(timestamps, ts)
		prices = append(prices, price)

		if solarCol >= 0 {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[solarCol]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad solar value %q", line, rec[solarCol])
			}
			solar = append(solar, v)
		}
	}

	if solarCol < 0 {
		return timeseries.New(timestamps, prices, nil, resolution)
	}
	return timeseries.New(timestamps, prices, solar, resolution)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
