// control/config_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, DefaultQueueCapacity, cfg.QueueCapacity)
	require.False(t, cfg.DropOnFull)
}

func TestValidateNormalizesZeroCapacity(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultQueueCapacity, cfg.QueueCapacity)
}

func TestValidateRejectsNegativeCapacity(t *testing.T) {
	cfg := Config{QueueCapacity: -1}
	require.Error(t, cfg.Validate())
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fdmux.yaml")
	data := []byte("queue_capacity: 64\ndrop_on_full: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.QueueCapacity)
	require.True(t, cfg.DropOnFull)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fdmux.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drop_on_full: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultQueueCapacity, cfg.QueueCapacity)
}
