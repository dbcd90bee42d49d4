package config

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/dmitrijs2005/conciencia/internal/flagx"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept strings like "3s" or integer nanoseconds.
type JSONConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	DatabasePath       string          `json:"database_path"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	Timezone           string          `json:"timezone"`
	LogLevel           string          `json:"log_level"`
}

// parseJSON overlays Config with values from the file named by -c/-config
// or CONCIENCIA_CONFIG. Keys absent from the file keep their values.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := sonic.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Timezone != "" {
		cfg.Timezone = jc.Timezone
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
