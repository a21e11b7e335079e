// journal/journal.go
package journal

import (
	"context"
	"encoding/json"
	"time"
)

// AnalysisRecord is one analysis the user ran, successful or not.
type AnalysisRecord struct {
	ID        string
	Created   time.Time
	Symbol    string
	Benchmark string
	Start     time.Time
	End       time.Time
	Operation string
	Result    json.RawMessage // empty when Error is set
	Error     string
}

// Failed reports whether the analysis ended in an error.
func (r AnalysisRecord) Failed() bool { return r.Error != "" }

type Recorder interface {
	RecordAnalysis(ctx context.Context, rec AnalysisRecord) error
}

type Journal interface {
	Recorder
	Close() error
}

// Nop discards everything. It is used when the journal is disabled.
type Nop struct{}

func (Nop) RecordAnalysis(context.Context, AnalysisRecord) error { return nil }
func (Nop) Close() error                                         { return nil }
