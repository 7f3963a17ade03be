package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidInputFile checks that path names a readable regular file.
func IsValidInputFile(path string) error {
	if err := IsValidPath(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file is not readable: %s: %w", path, err)
	}
	return f.Close()
}

// IsValidBackupFileName checks that name looks like a JSON snapshot.
func IsValidBackupFileName(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return fmt.Errorf("backup file must have a .json extension: %s", name)
	}
	return nil
}

// IsValidReportFormat checks if the given format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case "json", "yaml", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'json', 'yaml', 'csv'", format)
	}
}

// IsValidFilePermissions checks that others have no access to a file
// holding personal financial data.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
