package scrape_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"careers-engine/internal/config"
	"careers-engine/internal/domain"
	"careers-engine/internal/logging"
	"careers-engine/internal/scrape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	jobs []domain.RawJob
	err  error
	wait bool
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Fetch(ctx context.Context) ([]domain.RawJob, error) {
	if s.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.jobs, s.err
}

func TestFetchOrEmpty(t *testing.T) {
	log := logging.Nop()

	t.Run("passes records through", func(t *testing.T) {
		want := []domain.RawJob{{Title: "Engineer"}}
		got, err := scrape.FetchOrEmpty(context.Background(), stubSource{jobs: want}, time.Second, log)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("failure degrades to no records", func(t *testing.T) {
		boom := errors.New("boom")
		got, err := scrape.FetchOrEmpty(context.Background(), stubSource{err: boom}, time.Second, log)
		assert.ErrorIs(t, err, boom)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("timeout", func(t *testing.T) {
		got, err := scrape.FetchOrEmpty(context.Background(), stubSource{wait: true}, 10*time.Millisecond, log)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Empty(t, got)
	})

	t.Run("nil records become empty", func(t *testing.T) {
		got, err := scrape.FetchOrEmpty(context.Background(), stubSource{}, 0, log)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestNewSource(t *testing.T) {
	cfg := config.Default()

	src, err := scrape.NewSource(cfg, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, "feed", src.Name())

	cfg.Source.Kind = config.SourceBoard
	src, err = scrape.NewSource(cfg, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, "deel", src.Name())

	cfg.Source.Kind = "rss"
	_, err = scrape.NewSource(cfg, logging.Nop())
	assert.Error(t, err)
}
