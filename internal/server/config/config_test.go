package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/flagx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":9090", c.MetricsAddr)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 24*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, 30, c.InsightWindowDays)
	assert.Equal(t, 5, c.InsightThreshold)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_NoArgsYieldsDefaults(t *testing.T) {
	t.Setenv(flagx.ConfigEnvVar, "")

	c, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestParseFlags(t *testing.T) {
	c := defaults()
	args := []string{
		"-a", "127.0.0.1:9091", "-m", "", "-d", "db", "-s", "secret",
		"-t", "1", "-r", "3", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
		"-x", "60", "-z", "America/Mexico_City", "-w", "7", "-n", "2", "-l", "debug",
		"-unknown", "x",
	}
	require.NoError(t, parseFlags(c, args))

	want := &Config{
		EndpointAddrGRPC:             "127.0.0.1:9091",
		MetricsAddr:                  "",
		DatabaseDSN:                  "db",
		SecretKey:                    "secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: 3 * time.Minute,
		S3RootUser:                   "user",
		S3RootPassword:               "password",
		S3Bucket:                     "bucket",
		S3Region:                     "us-west-1",
		S3BaseEndpoint:               "http://endpoint",
		ExportLinkValidity:           time.Hour,
		Timezone:                     "America/Mexico_City",
		InsightWindowDays:            7,
		InsightThreshold:             2,
		LogLevel:                     "debug",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_BadValue(t *testing.T) {
	c := defaults()
	assert.Error(t, parseFlags(c, []string{"-t", "soon"}))
}

func TestParseJSON_OverlaysPresentKeys(t *testing.T) {
	path := writeConfig(t, `{
		"endpoint_addr_grpc": "www.example:9000",
		"database_dsn": "postgres://db",
		"access_token_validity_duration": "2m",
		"refresh_token_validity_duration": 3600000000000,
		"metrics_addr": "",
		"insight_threshold": 0
	}`)

	c := defaults()
	require.NoError(t, parseJSON(c, []string{"-config", path}))

	want := defaults()
	want.EndpointAddrGRPC = "www.example:9000"
	want.DatabaseDSN = "postgres://db"
	want.AccessTokenValidityDuration = 2 * time.Minute
	want.RefreshTokenValidityDuration = time.Hour
	want.MetricsAddr = ""
	want.InsightThreshold = 0
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseJSON_Errors(t *testing.T) {
	c := defaults()
	assert.ErrorContains(t, parseJSON(c, []string{"-c", filepath.Join(t.TempDir(), "missing.json")}), "read config")

	bad := writeConfig(t, `{"access_token_validity_duration": "forever"}`)
	assert.ErrorContains(t, parseJSON(c, []string{"-c", bad}), "parse config")
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeConfig(t, `{"endpoint_addr_grpc": ":7000", "secret_key": "from-file"}`)

	c, err := LoadConfig([]string{"-c", path, "-a", ":8000"})
	require.NoError(t, err)
	assert.Equal(t, ":8000", c.EndpointAddrGRPC)
	assert.Equal(t, "from-file", c.SecretKey)
}

func TestLoadConfig_EnvConfigFile(t *testing.T) {
	path := writeConfig(t, `{"timezone": "UTC"}`)
	t.Setenv(flagx.ConfigEnvVar, path)

	c, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "UTC", c.Timezone)
}

func TestValidate(t *testing.T) {
	tests := []func(c *Config){
		func(c *Config) { c.EndpointAddrGRPC = "" },
		func(c *Config) { c.DatabaseDSN = "" },
		func(c *Config) { c.SecretKey = "" },
		func(c *Config) { c.AccessTokenValidityDuration = 0 },
		func(c *Config) { c.InsightWindowDays = 0 },
	}
	for i, mutate := range tests {
		c := defaults()
		mutate(c)
		assert.Error(t, c.Validate(), "case %d", i)
	}

	_, err := LoadConfig([]string{"-s", ""})
	assert.Error(t, err)
}
