package tui

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedBestNeverLowers(t *testing.T) {
	inner := &memKeeper{}
	b := newSharedBest(inner)

	assert.NoError(t, b.SetBestScore(10))
	assert.NoError(t, b.SetBestScore(7))
	assert.NoError(t, b.SetBestScore(10))
	assert.NoError(t, b.SetBestScore(12))

	assert.Equal(t, []int{10, 10, 12}, inner.writes)
	best, ok := b.BestScore()
	assert.True(t, ok)
	assert.Equal(t, 12, best)
}

func TestSharedBestConcurrent(t *testing.T) {
	inner := &memKeeper{}
	b := newSharedBest(inner)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			b.SetBestScore(score)
		}(i)
	}
	wg.Wait()

	best, _ := b.BestScore()
	assert.Equal(t, 50, best)
}
