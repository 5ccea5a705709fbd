package sparrow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_defaultConfig_isValid(t *testing.T) {
	require.NoError(t, DefaultConfig().validate())
}

func Test_loadConfig_overridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sparrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_tasks: 4\nlowest_priority: 9\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxTasks)
	assert.Equal(t, 9, cfg.LowestPriority)
	assert.Equal(t, DefaultConfig().MaxSemaphores, cfg.MaxSemaphores)
	assert.Equal(t, DefaultConfig().MaxQueues, cfg.MaxQueues)
}

func Test_loadConfig_rejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sparrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_tasks: 1\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, ErrInvalidArgument, kerr.Code)
}

func Test_loadConfig_missingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
