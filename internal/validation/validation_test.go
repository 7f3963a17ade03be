package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"parcelas/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPath(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "backup.json")
	require.NoError(t, os.WriteFile(testFile, []byte("[]"), 0600))

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
	}{
		{"Existing file", testFile, false, ""},
		{"Existing directory", tmpDir, false, ""},
		{"Non-existent path", filepath.Join(tmpDir, "missing.json"), true, "path does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidPath(tt.path)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "backup.json")
	require.NoError(t, os.WriteFile(testFile, []byte("[]"), 0600))

	assert.NoError(t, validation.IsValidInputFile(testFile))

	err := validation.IsValidInputFile(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	err = validation.IsValidInputFile(filepath.Join(tmpDir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestIsValidBackupFileName(t *testing.T) {
	assert.NoError(t, validation.IsValidBackupFileName("compras_parceladas_backup_2024-03-15.json"))
	assert.NoError(t, validation.IsValidBackupFileName("BACKUP.JSON"))
	assert.Error(t, validation.IsValidBackupFileName("backup.csv"))
	assert.Error(t, validation.IsValidBackupFileName("backup"))
}

func TestIsValidReportFormat(t *testing.T) {
	for _, format := range []string{"json", "yaml", "csv"} {
		assert.NoError(t, validation.IsValidReportFormat(format), format)
	}

	err := validation.IsValidReportFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format: xml")
	assert.Error(t, validation.IsValidReportFormat(""))
}

func TestIsValidFilePermissions(t *testing.T) {
	tests := []struct {
		name        string
		mode        os.FileMode
		expectError bool
	}{
		{"Owner only", 0600, false},
		{"Group readable", 0640, false},
		{"World readable", 0644, true},
		{"Everyone", 0777, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidFilePermissions(tt.mode)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "too permissive")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
