package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rustyeddy/stockstat/market"
)

const analysisColumns = `analysis_id, created, symbol, benchmark, start_date, end_date, operation, result, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (AnalysisRecord, error) {
	var (
		rec        AnalysisRecord
		start, end string
		result     string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Created,
		&rec.Symbol,
		&rec.Benchmark,
		&start,
		&end,
		&rec.Operation,
		&result,
		&rec.Error,
	); err != nil {
		return AnalysisRecord{}, err
	}

	var err error
	if rec.Start, err = market.ParseDate(start); err != nil {
		return AnalysisRecord{}, err
	}
	if rec.End, err = market.ParseDate(end); err != nil {
		return AnalysisRecord{}, err
	}
	if result != "null" {
		rec.Result = []byte(result)
	}
	return rec, nil
}

// GetAnalysis returns a single analysis record by ID.
func (j *SQLite) GetAnalysis(ctx context.Context, id string) (AnalysisRecord, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses
		WHERE analysis_id = ?`, id)

	rec, err := scanAnalysis(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return AnalysisRecord{}, fmt.Errorf("analysis %q not found", id)
		}
		return AnalysisRecord{}, err
	}
	return rec, nil
}

// ListAnalyses returns the analyses of symbol, oldest first. An empty symbol
// lists everything.
func (j *SQLite) ListAnalyses(ctx context.Context, symbol string) ([]AnalysisRecord, error) {
	q := `SELECT ` + analysisColumns + ` FROM analyses`
	var args []any
	if symbol != "" {
		q += ` WHERE symbol = ?`
		args = append(args, market.NormalizeSymbol(symbol))
	}
	q += ` ORDER BY analysis_id ASC`

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListAnalysesBetween returns analyses created within [start, end).
func (j *SQLite) ListAnalysesBetween(ctx context.Context, start, end time.Time) ([]AnalysisRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses
		WHERE created >= ? AND created < ?
		ORDER BY analysis_id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]AnalysisRecord, error) {
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
