package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/stockstat/market"
)

// SeriesHeader is the canonical price CSV header.
var SeriesHeader = []string{"date", "open", "high", "low", "close", "adj_close", "volume"}

// WriteSeriesCSV writes s in the canonical layout and returns the number of rows written.
func WriteSeriesCSV(w io.Writer, s market.PriceSeries) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(SeriesHeader); err != nil {
		return 0, err
	}

	written := 0
	for _, r := range s.Records {
		if err := cw.Write([]string{
			r.Date.Format(market.DateLayout),
			f(r.Open),
			f(r.High),
			f(r.Low),
			f(r.Close),
			f(r.AdjClose),
			strconv.FormatInt(r.Volume, 10),
		}); err != nil {
			return written, err
		}
		written++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, err
	}
	return written, nil
}

// ReadSeriesCSV parses a canonical price CSV. The result is validated.
func ReadSeriesCSV(r io.Reader, symbol string) (market.PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(SeriesHeader)

	header, err := cr.Read()
	if err != nil {
		return market.PriceSeries{}, fmt.Errorf("read header: %w", err)
	}
	for i, h := range SeriesHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != h {
			return market.PriceSeries{}, fmt.Errorf("unexpected header column %d: %q (want %q)", i, header[i], h)
		}
	}

	s := market.PriceSeries{Symbol: market.NormalizeSymbol(symbol)}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return market.PriceSeries{}, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row)
		if err != nil {
			return market.PriceSeries{}, fmt.Errorf("line %d: %w", line, err)
		}
		s.Records = append(s.Records, rec)
	}

	if err := s.Validate(); err != nil {
		return market.PriceSeries{}, err
	}
	return s, nil
}

func parseRow(row []string) (market.PriceRecord, error) {
	var (
		rec market.PriceRecord
		err error
	)
	if rec.Date, err = market.ParseDate(row[0]); err != nil {
		return rec, err
	}
	cols := []*float64{&rec.Open, &rec.High, &rec.Low, &rec.Close, &rec.AdjClose}
	for i, dst := range cols {
		v := strings.TrimSpace(row[i+1])
		if *dst, err = strconv.ParseFloat(v, 64); err != nil {
			return rec, fmt.Errorf("bad %s %q", SeriesHeader[i+1], v)
		}
	}
	v := strings.TrimSpace(row[6])
	if rec.Volume, err = strconv.ParseInt(v, 10, 64); err != nil {
		return rec, fmt.Errorf("bad volume %q", v)
	}
	return rec, nil
}

// CSVProvider serves <Dir>/<SYMBOL>.csv files as a market.Provider, for
// offline use and for replaying exported data.
type CSVProvider struct {
	Dir string
}

func (p CSVProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) (market.PriceSeries, error) {
	symbol = market.NormalizeSymbol(symbol)
	path := filepath.Join(p.Dir, symbol+".csv")

	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNotFound, "no data file %s", path)
		}
		return market.PriceSeries{}, &market.FetchError{Symbol: symbol, Kind: market.FetchNetwork, Err: err}
	}
	defer fh.Close()

	s, err := ReadSeriesCSV(fh, symbol)
	if err != nil {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchBadResponse, "%s: %w", path, err)
	}

	s = s.Between(start, end)
	if s.Len() == 0 {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNotFound,
			"no trading days in %s", market.FormatRange(start, end))
	}
	return s, nil
}

// SaveSeriesCSV writes s to <dir>/<SYMBOL>.csv, the layout CSVProvider reads.
func SaveSeriesCSV(dir string, s market.PriceSeries) (string, error) {
	path := filepath.Join(dir, market.NormalizeSymbol(s.Symbol)+".csv")
	fh, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := WriteSeriesCSV(fh, s); err != nil {
		fh.Close()
		return "", err
	}
	return path, fh.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

var _ market.Provider = CSVProvider{}
