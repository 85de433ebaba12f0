package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingDigest struct {
	days []time.Time
}

func (c *countingDigest) Send(_ context.Context, day time.Time) (int, error) {
	c.days = append(c.days, day)
	return 1, nil
}

func TestScheduler_NextRun(t *testing.T) {
	s := NewScheduler(&countingDigest{}, 7, time.UTC, zap.NewNop())

	before := time.Date(2025, time.July, 5, 6, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.July, 5, 7, 0, 0, 0, time.UTC), s.nextRun(before))

	exactly := time.Date(2025, time.July, 5, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.July, 6, 7, 0, 0, 0, time.UTC), s.nextRun(exactly))

	monthEnd := time.Date(2025, time.July, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.August, 1, 7, 0, 0, 0, time.UTC), s.nextRun(monthEnd))
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	digest := &countingDigest{}
	s := NewScheduler(digest, 7, time.UTC, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.runAgendaTask(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("agenda task did not stop")
	}
	assert.Empty(t, digest.days)
}
