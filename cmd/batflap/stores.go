package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/batflap/internal/games/batflap"
	"github.com/vovakirdan/batflap/internal/platform/tui"
	"github.com/vovakirdan/batflap/internal/storage"
)

// stores bundles the score history and the best score keeper.
type stores struct {
	history *storage.Store // nil if the database could not be opened
	kv      storage.KV
	best    *storage.BestScores
}

// openStores opens the history database and the --store backend. A broken
// sqlite database degrades to an in-memory best score so the game still runs.
func openStores(logger *log.Logger) (*stores, error) {
	backend, err := storage.ParseBackend(flagStore)
	if err != nil {
		return nil, err
	}

	s := &stores{}
	s.history, err = storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		s.history = nil
		if backend == storage.BackendSQLite {
			backend = storage.BackendMemory
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.kv, err = storage.OpenKV(ctx, backend, s.history, flagRedisAddr)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.best = storage.NewBestScores(s.kv, logger)
	s.best.Seed(s.history, batflap.GameID)

	logger.Debug("stores ready", "backend", backend, "history", s.history != nil)
	return s, nil
}

// historyRecorder returns the history as an interface value that is nil
// when no database is open.
func (s *stores) historyRecorder() tui.ScoreRecorder {
	if s.history == nil {
		return nil
	}
	return s.history
}

// Close releases the best score backend, then the database.
func (s *stores) Close() {
	if s.kv != nil {
		s.kv.Close()
	}
	if s.history != nil {
		s.history.Close()
	}
}
