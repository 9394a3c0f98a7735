package storage

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// BestScoreKey is where the best score lives in the key-value store.
const BestScoreKey = "batflap-highscore"

const defaultTimeout = 2 * time.Second

// BestScores keeps the single best score in a KV. It satisfies the game's
// score keeper: reads never fail, unreadable values count as absent.
type BestScores struct {
	kv      KV
	key     string
	timeout time.Duration
	logger  *log.Logger
}

// NewBestScores creates a best-score keeper over kv. A nil logger discards.
func NewBestScores(kv KV, logger *log.Logger) *BestScores {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BestScores{
		kv:      kv,
		key:     BestScoreKey,
		timeout: defaultTimeout,
		logger:  logger.With("component", "best-scores"),
	}
}

// BestScore returns the stored score, or false if none is stored or the
// stored value is not a non-negative integer.
func (b *BestScores) BestScore() (int, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	raw, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		b.logger.Warn("cannot load best score", "key", b.key, "err", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}

	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		b.logger.Warn("ignoring malformed best score", "key", b.key, "value", raw)
		return 0, false
	}
	return score, true
}

// SetBestScore stores score. Failures are logged and returned.
func (b *BestScores) SetBestScore(score int) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.kv.Set(ctx, b.key, strconv.Itoa(score)); err != nil {
		b.logger.Warn("cannot save best score", "key", b.key, "score", score, "err", err)
		return err
	}
	b.logger.Debug("best score saved", "score", score)
	return nil
}

// Seed copies the history's high score into the store when no best score
// is stored yet, e.g. after switching to a fresh redis or memory backend.
// It returns the best score in effect afterwards.
func (b *BestScores) Seed(history *Store, gameID string) int {
	if best, ok := b.BestScore(); ok || history == nil {
		return best
	}

	high, err := history.HighScore(gameID)
	if err != nil {
		b.logger.Warn("cannot read score history", "err", err)
		return 0
	}
	if high <= 0 {
		return 0
	}
	if err := b.SetBestScore(high); err != nil {
		return 0
	}
	b.logger.Info("best score seeded from history", "score", high)
	return high
}
