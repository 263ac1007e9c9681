package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ignite/eligibility-signpost/internal/domain"
	"github.com/ignite/eligibility-signpost/internal/eligibility"
)

const campaignCacheKey = "eligibility:campaign-configs"

// CachedCampaignSource is a Redis read-through cache in front of a campaign
// source. Cache faults fall back to the underlying source so Redis going
// away degrades to slower reads, never to failed checks.
type CachedCampaignSource struct {
	source eligibility.CampaignSource
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCachedCampaignSource(source eligibility.CampaignSource, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedCampaignSource {
	return &CachedCampaignSource{source: source, client: client, ttl: ttl, logger: logger}
}

// Campaigns returns the cached configs when present, otherwise reads through
// to the source and repopulates the cache.
func (c *CachedCampaignSource) Campaigns(ctx context.Context) ([]domain.CampaignConfig, error) {
	data, err := c.client.Get(ctx, campaignCacheKey).Bytes()
	if err == nil {
		var configs []domain.CampaignConfig
		if err := json.Unmarshal(data, &configs); err == nil {
			return configs, nil
		}
		c.logger.Warn().Msg("discarding unreadable campaign cache entry")
	} else if err != redis.Nil {
		c.logger.Warn().Err(err).Msg("campaign cache read failed, falling back to source")
	}

	configs, err := c.source.Campaigns(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(configs); err == nil {
		if err := c.client.Set(ctx, campaignCacheKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("campaign cache write failed")
		}
	}
	return configs, nil
}

// Invalidate drops the cached configs so the next read hits the source.
func (c *CachedCampaignSource) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, campaignCacheKey).Err(); err != nil {
		return fmt.Errorf("invalidating campaign cache: %w", err)
	}
	return nil
}
