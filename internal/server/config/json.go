package config

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/conciencia/internal/flagx"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

// JSONConfig is the on-disk shape of the server config file. Durations
// accept "1m" strings or integer nanoseconds.
type JSONConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc"`
	MetricsAddr                  *string         `json:"metrics_addr"`
	DatabaseDSN                  string          `json:"database_dsn"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string          `json:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket"`
	S3Region                     string          `json:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint"`
	ExportLinkValidity           *timex.Duration `json:"export_link_validity"`
	Timezone                     string          `json:"timezone"`
	InsightWindowDays            int             `json:"insight_window_days"`
	InsightThreshold             *int            `json:"insight_threshold"`
	LogLevel                     string          `json:"log_level"`
}

// parseJSON overlays values from the file named by -c/-config (or the
// CONCIENCIA_CONFIG environment variable). Keys absent from the file keep
// their current values.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JSONConfig{}
	if err := sonic.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	if c.MetricsAddr != nil {
		config.MetricsAddr = *c.MetricsAddr
	}
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.ExportLinkValidity != nil {
		config.ExportLinkValidity = c.ExportLinkValidity.Duration
	}
	setString(&config.Timezone, c.Timezone)
	if c.InsightWindowDays > 0 {
		config.InsightWindowDays = c.InsightWindowDays
	}
	if c.InsightThreshold != nil {
		config.InsightThreshold = *c.InsightThreshold
	}
	setString(&config.LogLevel, c.LogLevel)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
