package root_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelas/cmd/root"
	"parcelas/internal/ledgererror"
	"parcelas/internal/logging"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "parcelas", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "installment purchases")
	assert.Contains(t, root.Cmd.Long, "compras parceladas")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	configFlag := root.Cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	dataDirFlag := root.Cmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, dataDirFlag)
	assert.Equal(t, "d", dataDirFlag.Shorthand)

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("backend"))
}

func TestRootCommand_Run(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	assert.NotPanics(t, func() {
		root.Cmd.Run(cmd, []string{})
	})
	assert.Contains(t, out.String(), "Welcome to parcelas!")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestBootstrap_AppliesFlagOverrides(t *testing.T) {
	dataDir := t.TempDir()
	root.SharedFlags = root.CommonFlags{
		ConfigFile: writeConfig(t, "storage:\n  backend: sqlite\n"),
		LogLevel:   "warn",
		Backend:    "file",
		DataDir:    dataDir,
	}
	t.Cleanup(func() { root.SharedFlags = root.CommonFlags{} })

	require.NoError(t, root.Bootstrap())
	defer root.Shutdown()

	cfg := root.Config()
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, dataDir, cfg.Storage.Directory)
	assert.NotNil(t, root.Ledger())
	assert.Equal(t, "BRL", root.Formatter().Currency)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	root.SharedFlags = root.CommonFlags{ConfigFile: writeConfig(t, "report:\n  format: pdf\n")}
	t.Cleanup(func() { root.SharedFlags = root.CommonFlags{} })

	err := root.Bootstrap()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid report format")
	assert.Nil(t, root.AppContainer)
}

func TestShutdown_WithoutContainer(t *testing.T) {
	root.AppContainer = nil
	assert.NotPanics(t, root.Shutdown)
}

func TestFail(t *testing.T) {
	root.Log = logging.NewMockLogger()

	err := root.Fail(&ledgererror.ValidationError{Field: ledgererror.FieldName})
	assert.EqualError(t, err, "Name is required")

	err = root.Fail(errors.New("disk full"))
	assert.EqualError(t, err, "Operation failed: disk full")
}
