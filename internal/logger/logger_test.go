package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLogFilePathDefaultsToWorkdirLogs(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(tmpDir))

	got, err := resolveLogFilePath(Options{})
	require.NoError(t, err)

	realTmp, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)
	realDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realTmp, defaultLogDirName), realDir)
	assert.Equal(t, defaultLogFilename, filepath.Base(got))
}

func TestReleaseModeWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "orders.log"})
	log.Sugar().Infow("order_placed", "order_no", "ORD-ABCD1234")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "orders.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"order_placed"`)
	assert.Contains(t, string(content), `"order_no":"ORD-ABCD1234"`)
}

func TestDebugModeSkipsFile(t *testing.T) {
	dir := t.TempDir()
	log := New("debug", Options{Dir: dir, Filename: "debug.log"})
	log.Info("debug-only")
	_ = log.Sync()

	_, err := os.Stat(filepath.Join(dir, "debug.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestNamedAddsComponent(t *testing.T) {
	dir := t.TempDir()
	prev := L
	t.Cleanup(func() { L = prev })

	L = New("release", Options{Dir: dir, Filename: "named.log"})
	Named("outbox_relay").Infow("relay_tick", "pending", 3)
	Sync()

	content, err := os.ReadFile(filepath.Join(dir, "named.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"component":"outbox_relay"`)
	assert.Contains(t, string(content), `"pending":3`)
}

func TestZFallsBackBeforeInit(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })
	L = nil

	require.NotNil(t, Z())
	assert.Same(t, Z(), Z())
}
