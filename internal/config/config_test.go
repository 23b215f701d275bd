package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_url": "http://localhost:8000",
		"email": "manager@example.com",
		"as_of": "2026-03-01",
		"port": 9000,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, "manager@example.com", cfg.Email)
	assert.Equal(t, "2026-03-01", cfg.AsOf)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(snapshot, []byte(`{}`), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "snapshot source", cfg: Config{Snapshot: snapshot}},
		{
			name:    "sources are mutually exclusive",
			cfg:     Config{Snapshot: snapshot, DatabaseURL: "postgres://x"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing snapshot file",
			cfg:     Config{Snapshot: "/nope/snap.json"},
			wantErr: "snapshot file not found",
		},
		{
			name:    "bad port",
			cfg:     Config{Port: 70000},
			wantErr: "port",
		},
		{
			name:    "bad as_of",
			cfg:     Config{AsOf: "03/01/2026"},
			wantErr: "as_of",
		},
		{
			name:    "api_url needs email",
			cfg:     Config{APIURL: "http://localhost:8000"},
			wantErr: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIURL: "http://default:8000",
		Email:  "default@example.com",
		AsOf:   "2026-01-01",
		Port:   9090,
	}
	partial := Config{Email: "custom@example.com"}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "custom@example.com", merged.Email)
	assert.Equal(t, "http://default:8000", merged.APIURL)
	assert.Equal(t, "2026-01-01", merged.AsOf)
	assert.Equal(t, 9090, merged.Port)
}

func TestMergeWithDefaults_DefaultPort(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})
	assert.Equal(t, 8000, merged.Port)
}

func TestReferenceDate(t *testing.T) {
	ref, err := (&Config{}).ReferenceDate()
	require.NoError(t, err)
	assert.True(t, ref.IsZero())

	ref, err = (&Config{AsOf: "2026-02-03"}).ReferenceDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), ref)

	_, err = (&Config{AsOf: "bad"}).ReferenceDate()
	assert.Error(t, err)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("RM_TEST_INT", "42")
	t.Setenv("RM_TEST_BAD_INT", "x")
	t.Setenv("RM_TEST_BOOL", "false")
	t.Setenv("RM_TEST_DURATION", "90s")
	t.Setenv("RM_TEST_LIST", " a, ,b ,")

	assert.Equal(t, 42, EnvInt("RM_TEST_INT", 1))
	assert.Equal(t, 1, EnvInt("RM_TEST_BAD_INT", 1))
	assert.False(t, EnvBool("RM_TEST_BOOL", true))
	assert.True(t, EnvBool("RM_TEST_UNSET", true))
	assert.Equal(t, 90*time.Second, EnvDuration("RM_TEST_DURATION", time.Second))
	assert.Equal(t, "fallback", EnvString("RM_TEST_UNSET", "fallback"))
	assert.Equal(t, []string{"a", "b"}, EnvList("RM_TEST_LIST"))
	assert.Nil(t, EnvList("RM_TEST_UNSET"))
}
