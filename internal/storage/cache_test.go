package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

type countingSource struct {
	configs []domain.CampaignConfig
	err     error
	calls   int
}

func (s *countingSource) Campaigns(context.Context) ([]domain.CampaignConfig, error) {
	s.calls++
	return s.configs, s.err
}

func newCacheFixture(t *testing.T, source *countingSource) (*CachedCampaignSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedCampaignSource(source, client, time.Minute, zerolog.Nop()), mr
}

func testConfigs() []domain.CampaignConfig {
	return []domain.CampaignConfig{{
		ID:        "rsv-2025",
		Version:   1,
		Type:      domain.CampaignTypeVaccination,
		Target:    "RSV",
		StartDate: domain.NewDate(2025, 1, 1),
		EndDate:   domain.NewDate(2025, 12, 31),
		Iterations: []domain.Iteration{{
			ID:            "it-1",
			IterationDate: domain.NewDate(2025, 1, 1),
		}},
	}}
}

func TestCachedCampaigns_MissThenHit(t *testing.T) {
	source := &countingSource{configs: testConfigs()}
	cache, mr := newCacheFixture(t, source)

	configs, err := cache.Campaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, 1, source.calls)
	assert.True(t, mr.Exists(campaignCacheKey))

	configs, err = cache.Campaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "rsv-2025", configs[0].ID)
	assert.Equal(t, 1, source.calls, "second read should come from the cache")
}

func TestCachedCampaigns_CorruptEntryFallsThrough(t *testing.T) {
	source := &countingSource{configs: testConfigs()}
	cache, mr := newCacheFixture(t, source)

	require.NoError(t, mr.Set(campaignCacheKey, "{corrupt"))

	configs, err := cache.Campaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, 1, source.calls)
}

func TestCachedCampaigns_RedisDownFallsBack(t *testing.T) {
	source := &countingSource{configs: testConfigs()}
	cache, mr := newCacheFixture(t, source)
	mr.Close()

	configs, err := cache.Campaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, 1, source.calls)
}

func TestCachedCampaigns_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("s3 unavailable")
	source := &countingSource{err: boom}
	cache, _ := newCacheFixture(t, source)

	_, err := cache.Campaigns(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestInvalidate(t *testing.T) {
	source := &countingSource{configs: testConfigs()}
	cache, mr := newCacheFixture(t, source)

	data, err := json.Marshal(testConfigs())
	require.NoError(t, err)
	require.NoError(t, mr.Set(campaignCacheKey, string(data)))

	require.NoError(t, cache.Invalidate(context.Background()))
	assert.False(t, mr.Exists(campaignCacheKey))

	_, err = cache.Campaigns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}
