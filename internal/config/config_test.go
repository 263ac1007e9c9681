package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  campaign_bucket: eligibility-campaigns
  person_table: eligibility-person-data
  audit_table: eligibility-audit
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout())
	assert.Equal(t, "eu-west-2", cfg.Storage.AWSRegion)
	assert.Equal(t, "campaigns/", cfg.Storage.CampaignPrefix)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  timeout_seconds: 10
storage:
  campaign_bucket: my-bucket
  campaign_prefix: configs/
  aws_region: eu-west-1
cache:
  enabled: true
  redis_addr: redis:6379
  ttl_seconds: 60
auth:
  enabled: true
  api_keys:
    - secret-key
logging:
  level: debug
  pretty: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "my-bucket", cfg.Storage.CampaignBucket)
	assert.Equal(t, "configs/", cfg.Storage.CampaignPrefix)
	assert.Equal(t, "eu-west-1", cfg.Storage.AWSRegion)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTL())
	assert.Equal(t, []string{"secret-key"}, cfg.Auth.APIKeys)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	path := writeConfig(t, `
storage:
  campaign_bucket: from-file
`)
	t.Setenv("CAMPAIGN_BUCKET", "from-env")
	t.Setenv("PERSON_TABLE", "person-env")
	t.Setenv("REDIS_ADDR", "redis-env:6379")
	t.Setenv("API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Storage.CampaignBucket)
	assert.Equal(t, "person-env", cfg.Storage.PersonTable)
	assert.Equal(t, "redis-env:6379", cfg.Cache.RedisAddr)
	assert.True(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Auth.Enabled)
	assert.Contains(t, cfg.Auth.APIKeys, "env-key")
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestGetHost_ECSDetection(t *testing.T) {
	t.Setenv("ECS_CONTAINER_METADATA_URI", "http://169.254.170.2/v3")
	c := ServerConfig{Host: "localhost"}
	assert.Equal(t, "0.0.0.0", c.GetHost())
}

func TestGetAWSProfile_Override(t *testing.T) {
	c := StorageConfig{AWSProfile: "dev"}

	t.Setenv("AWS_PROFILE_OVERRIDE", "staging")
	assert.Equal(t, "staging", c.GetAWSProfile())

	t.Setenv("AWS_PROFILE_OVERRIDE", "iam")
	assert.Equal(t, "", c.GetAWSProfile())
}
