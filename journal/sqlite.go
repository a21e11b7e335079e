package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/stockstat/market"
)

// SQLite stores analysis history and doubles as the price cache.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordAnalysis(ctx context.Context, r AnalysisRecord) error {
	result := string(r.Result)
	if result == "" {
		result = "null"
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO analyses
		(analysis_id, created, symbol, benchmark, start_date, end_date, operation, result, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Created.UTC(), r.Symbol, r.Benchmark,
		r.Start.Format(market.DateLayout), r.End.Format(market.DateLayout),
		r.Operation, result, r.Error,
	)
	return err
}

// SaveSeries stores the records of s and remembers that the exact request
// [start, end) has been satisfied.
func (j *SQLite) SaveSeries(ctx context.Context, s market.PriceSeries, start, end time.Time) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO prices
		(symbol, date, open, high, low, close, adj_close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range s.Records {
		if _, err := stmt.ExecContext(ctx,
			s.Symbol, r.Date.Format(market.DateLayout),
			r.Open, r.High, r.Low, r.Close, r.AdjClose, r.Volume,
		); err != nil {
			return fmt.Errorf("insert %s %s: %w", s.Symbol, r.Date.Format(market.DateLayout), err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO fetches
		(symbol, start_date, end_date, records, fetched_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.Symbol, start.Format(market.DateLayout), end.Format(market.DateLayout),
		len(s.Records), time.Now().UTC(),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadSeries returns the cached series for a request that was saved before.
// ok is false when the request has never been fetched.
func (j *SQLite) LoadSeries(ctx context.Context, symbol string, start, end time.Time) (s market.PriceSeries, ok bool, err error) {
	from, to := start.Format(market.DateLayout), end.Format(market.DateLayout)

	var n int
	err = j.db.QueryRowContext(ctx, `
		SELECT records FROM fetches
		WHERE symbol = ? AND start_date = ? AND end_date = ?`,
		symbol, from, to).Scan(&n)
	if err == sql.ErrNoRows {
		return market.PriceSeries{}, false, nil
	}
	if err != nil {
		return market.PriceSeries{}, false, err
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT date, open, high, low, close, adj_close, volume
		FROM prices
		WHERE symbol = ? AND date >= ? AND date < ?
		ORDER BY date ASC`, symbol, from, to)
	if err != nil {
		return market.PriceSeries{}, false, err
	}
	defer rows.Close()

	s = market.PriceSeries{Symbol: symbol}
	for rows.Next() {
		var (
			d string
			r market.PriceRecord
		)
		if err := rows.Scan(&d, &r.Open, &r.High, &r.Low, &r.Close, &r.AdjClose, &r.Volume); err != nil {
			return market.PriceSeries{}, false, err
		}
		if r.Date, err = market.ParseDate(d); err != nil {
			return market.PriceSeries{}, false, err
		}
		s.Records = append(s.Records, r)
	}
	if err := rows.Err(); err != nil {
		return market.PriceSeries{}, false, err
	}

	// rows went missing since the fetch; make the caller refetch
	if len(s.Records) < n {
		return market.PriceSeries{}, false, nil
	}
	return s, true, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

var (
	_ Journal            = (*SQLite)(nil)
	_ market.SeriesStore = (*SQLite)(nil)
)
