// Package yahoo fetches daily price history from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/stockstat/market"
)

const (
	// BaseURL is the public Yahoo Finance query host.
	BaseURL = "https://query1.finance.yahoo.com"

	// DefaultUserAgent is sent when Client.UserAgent is empty; Yahoo rejects
	// requests without one.
	DefaultUserAgent = "Mozilla/5.0"
)

// Client implements market.Provider against the v8 chart endpoint.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string
}

// NewClient returns a Client with its own http.Client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type chartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch downloads daily bars for symbol over [start, end).
func (c *Client) Fetch(ctx context.Context, symbol string, start, end time.Time) (market.PriceSeries, error) {
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNotFound, "missing symbol")
	}
	if !start.Before(end) {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchBadResponse,
			"start %s is not before end %s", start.Format(market.DateLayout), end.Format(market.DateLayout))
	}

	base := c.BaseURL
	if base == "" {
		base = BaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNetwork, "bad base url: %w", err)
	}
	u.Path = "/v8/finance/chart/" + symbol

	q := u.Query()
	q.Set("period1", strconv.FormatInt(start.UTC().Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.UTC().Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "div,splits")
	q.Set("includeAdjustedClose", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNetwork, "build request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return market.PriceSeries{}, &market.FetchError{Symbol: symbol, Kind: market.FetchNetwork, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchRateLimited, "yahoo http %d", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNotFound, "yahoo http %d: %s", resp.StatusCode, chartErrorText(resp.Body))
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchBadResponse,
			"yahoo http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var cr chartResp
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchBadResponse, "decode: %w", err)
	}

	return decodeSeries(symbol, &cr)
}

func decodeSeries(symbol string, cr *chartResp) (market.PriceSeries, error) {
	if e := cr.Chart.Error; e != nil {
		kind := market.FetchBadResponse
		if strings.EqualFold(e.Code, "Not Found") {
			kind = market.FetchNotFound
		}
		return market.PriceSeries{}, &market.FetchError{Symbol: symbol, Kind: kind, Err: errors.New(e.Description)}
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Timestamp) == 0 {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNotFound, "no data returned")
	}

	res := cr.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchBadResponse, "missing quote block")
	}
	quote := res.Indicators.Quote[0]

	var adj []*float64
	if len(res.Indicators.AdjClose) > 0 {
		adj = res.Indicators.AdjClose[0].AdjClose
	}

	n := len(res.Timestamp)
	for _, col := range [][]*float64{quote.Open, quote.High, quote.Low, quote.Close} {
		if len(col) != n {
			return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchBadResponse,
				"column length %d does not match %d timestamps", len(col), n)
		}
	}

	series := market.PriceSeries{Symbol: symbol, Records: make([]market.PriceRecord, 0, n)}
	for i, ts := range res.Timestamp {
		o, h, l, cl := quote.Open[i], quote.High[i], quote.Low[i], quote.Close[i]
		if o == nil || h == nil || l == nil || cl == nil {
			continue // null bar
		}
		rec := market.PriceRecord{
			Date:     market.Day(time.Unix(ts, 0)),
			Open:     *o,
			High:     *h,
			Low:      *l,
			Close:    *cl,
			AdjClose: *cl,
		}
		if i < len(adj) && adj[i] != nil {
			rec.AdjClose = *adj[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			rec.Volume = int64(*quote.Volume[i])
		}
		series.Records = append(series.Records, rec)
	}

	if len(series.Records) == 0 {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchNotFound, "no trading days in range")
	}

	sort.SliceStable(series.Records, func(i, j int) bool {
		return series.Records[i].Date.Before(series.Records[j].Date)
	})
	series.Records = dedupeDays(series.Records)

	if err := series.Validate(); err != nil {
		return market.PriceSeries{}, market.NewFetchError(symbol, market.FetchBadResponse, "%w", err)
	}
	return series, nil
}

// dedupeDays keeps the last bar of each calendar day. Yahoo sometimes appends
// a live bar for the current session next to the daily one.
func dedupeDays(recs []market.PriceRecord) []market.PriceRecord {
	out := recs[:0]
	for _, r := range recs {
		if len(out) > 0 && out[len(out)-1].Date.Equal(r.Date) {
			out[len(out)-1] = r
			continue
		}
		out = append(out, r)
	}
	return out
}

func chartErrorText(r io.Reader) string {
	var cr chartResp
	if err := json.NewDecoder(io.LimitReader(r, 8<<10)).Decode(&cr); err != nil || cr.Chart.Error == nil {
		return "not found"
	}
	return cr.Chart.Error.Description
}

var _ market.Provider = (*Client)(nil)
