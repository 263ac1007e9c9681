package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// CampaignStore reads campaign configurations from an S3 bucket. Each config
// is one JSON object; every .json key under the prefix is loaded.
type CampaignStore struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewCampaignStore(client *s3.Client, bucket, prefix string) *CampaignStore {
	return &CampaignStore{client: client, bucket: bucket, prefix: prefix}
}

// Campaigns loads and validates every stored campaign config. A config that
// fails to parse or validate is a configuration fault, not a skip: rule
// configs are deployed artifacts and a broken one must surface loudly.
func (s *CampaignStore) Campaigns(ctx context.Context) ([]domain.CampaignConfig, error) {
	var configs []domain.CampaignConfig

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing campaign configs: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".json") {
				continue
			}
			cfg, err := s.getConfig(ctx, key)
			if err != nil {
				return nil, err
			}
			configs = append(configs, cfg)
		}
	}
	return configs, nil
}

func (s *CampaignStore) getConfig(ctx context.Context, key string) (domain.CampaignConfig, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return domain.CampaignConfig{}, fmt.Errorf("getting campaign config %s: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return domain.CampaignConfig{}, fmt.Errorf("reading campaign config %s: %w", key, err)
	}
	return ParseCampaignConfig(data, key)
}

// ParseCampaignConfig decodes and validates one stored config document. The
// document may carry the config at its root or under a CampaignConfig
// envelope key.
func ParseCampaignConfig(data []byte, source string) (domain.CampaignConfig, error) {
	var envelope struct {
		CampaignConfig *domain.CampaignConfig `json:"CampaignConfig"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.CampaignConfig != nil {
		cfg := *envelope.CampaignConfig
		if err := cfg.Validate(); err != nil {
			return domain.CampaignConfig{}, fmt.Errorf("campaign config %s: %w", source, err)
		}
		return cfg, nil
	}

	var cfg domain.CampaignConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.CampaignConfig{}, domain.NewConfigurationError("campaign config %s is not valid JSON: %v", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.CampaignConfig{}, fmt.Errorf("campaign config %s: %w", source, err)
	}
	return cfg, nil
}
