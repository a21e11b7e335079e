package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockstat/analysis"
	"github.com/rustyeddy/stockstat/config"
	"github.com/rustyeddy/stockstat/internal/logging"
	"github.com/rustyeddy/stockstat/journal"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/yahoo"
)

// app holds what every command needs once the config is loaded.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *journal.SQLite // nil when the journal is disabled
	recorder journal.Recorder
	provider market.Provider

	closers []io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Provider.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, recorder: journal.Nop{}}
	a.closers = append(a.closers, logCloser)

	src, err := a.source()
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Journal.Enabled {
		db, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open journal: %w", err)
		}
		a.db = db
		a.recorder = db
		a.closers = append([]io.Closer{db}, a.closers...)

		// CSV files are already local.
		if cfg.Provider.DataDir == "" {
			src = &market.CachingProvider{Source: src, Store: db, Log: log}
		}
	}
	a.provider = src

	log.WithFields(logrus.Fields{
		"symbols":   cfg.Universe().Symbols(),
		"benchmark": cfg.Benchmark,
		"journal":   cfg.Journal.Enabled,
	}).Debug("configuration loaded")
	return a, nil
}

func (a *app) source() (market.Provider, error) {
	if a.cfg.Provider.DataDir != "" {
		a.log.Infof("reading prices from %s", a.cfg.Provider.DataDir)
		return journal.CSVProvider{Dir: a.cfg.Provider.DataDir}, nil
	}

	timeout, err := a.cfg.Provider.ParseTimeout()
	if err != nil {
		return nil, fmt.Errorf("provider timeout: %w", err)
	}
	c := yahoo.NewClient(a.cfg.Provider.BaseURL, timeout)
	c.UserAgent = a.cfg.Provider.UserAgent
	return c, nil
}

func (a *app) analyzer() *analysis.Analyzer {
	return &analysis.Analyzer{
		Provider:  a.provider,
		Recorder:  a.recorder,
		Benchmark: a.cfg.Benchmark,
		Log:       a.log,
	}
}

func (a *app) requireJournal() (*journal.SQLite, error) {
	if a.db == nil {
		return nil, fmt.Errorf("the analysis journal is disabled (journal.enabled: false)")
	}
	return a.db, nil
}

func (a *app) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
