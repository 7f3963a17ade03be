// Package backup implements snapshot export, restore and listing.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"parcelas/cmd/common"
	"parcelas/cmd/root"
	"parcelas/internal/dateutils"
	"parcelas/internal/fileutils"
	"parcelas/internal/logging"
	"parcelas/internal/models"
	"parcelas/internal/validation"
)

// Now is the clock used for backup file names.
var Now = time.Now

// Cmd represents the backup command
var Cmd = NewCmd()

// FileName returns the default snapshot file name for the given day, e.g.
// compras_parceladas_backup_2024-03-15.json.
func FileName(prefix string, day time.Time) string {
	return fmt.Sprintf("%s_%s.json", prefix, dateutils.FileStamp(day))
}

// NewCmd builds the backup command tree.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore all purchases as a JSON snapshot",
		Long: `Export the whole collection of purchases to a JSON file, or replace the
whole collection with the contents of such a file. Restoring is a full
overwrite, not a merge.`,
	}
	cmd.AddCommand(newExportCmd(), newRestoreCmd(), newListCmd())
	return cmd
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of all purchases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := root.Ledger().ExportSnapshot()
			if err != nil {
				return root.Fail(err)
			}

			out := cmd.OutOrStdout()
			if output == "-" {
				_, err := out.Write(append(data, '\n'))
				return err
			}

			cfg := root.Config()
			path := output
			if path == "" {
				path = filepath.Join(cfg.Backup.Directory, FileName(cfg.Backup.Prefix, Now()))
			}
			if err := fileutils.WriteFile(path, data, models.PermissionDataFile); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}

			root.Log.WithFields(
				logging.F(logging.FieldOperation, logging.OpExport),
				logging.F(logging.FieldFile, path),
			).Info("Backup written")
			fmt.Fprintf(out, "Backup exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default <backup.directory>/<prefix>_<date>.json)")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace all purchases with the contents of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := validation.IsValidInputFile(path); err != nil {
				return err
			}
			if err := validation.IsValidBackupFileName(path); err != nil {
				root.Log.WithField(logging.FieldFile, path).Warn(err.Error())
			}
			if info, err := os.Stat(path); err == nil {
				if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
					root.Log.WithField(logging.FieldFile, path).Warn(err.Error())
				}
			}

			data, err := fileutils.ReadFile(path)
			if err != nil {
				return err
			}

			l := root.Ledger()
			out := cmd.OutOrStdout()
			if current := l.Purchases(); len(current) > 0 && !yes {
				prompt := fmt.Sprintf("Replace the %d current purchase(s) with the contents of %s?", len(current), filepath.Base(path))
				if !common.Confirm(cmd.InOrStdin(), out, prompt) {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			restored, err := l.ImportSnapshot(data)
			if err != nil {
				return root.Fail(err)
			}
			fmt.Fprintf(out, "Data restored: %d purchase(s)\n", len(restored))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List snapshot files in the backup directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.Config()
			out := cmd.OutOrStdout()

			files, err := fileutils.ListFilesWithExtension(cfg.Backup.Directory, ".json")
			if err != nil {
				return err
			}

			found := 0
			for _, f := range files {
				if strings.HasPrefix(filepath.Base(f), cfg.Backup.Prefix+"_") {
					fmt.Fprintln(out, f)
					found++
				}
			}
			if found == 0 {
				fmt.Fprintf(out, "No backups found in %s\n", cfg.Backup.Directory)
			}
			return nil
		},
	}
}
