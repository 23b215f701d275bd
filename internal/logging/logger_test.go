package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLevel(t *testing.T) {
	log := New(Options{Service: "test"})
	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())
	assert.Equal(t, "test", log.Data["service"])
}

func TestNew_ParsesLevel(t *testing.T) {
	log := New(Options{Level: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())

	log = New(Options{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())
}

func TestNew_JSONFormatter(t *testing.T) {
	log := New(Options{JSON: true})
	_, ok := log.Logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := New(Options{File: path, JSON: true})

	log.WithField("engineer_id", 7).Info("capacity computed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "capacity computed")
	assert.Contains(t, string(data), `"engineer_id":7`)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_FORMAT", "JSON")

	opts := OptionsFromEnv("svc")
	assert.Equal(t, "warn", opts.Level)
	assert.True(t, opts.JSON)
	assert.Equal(t, "svc", opts.Service)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Info("dropped")
}
