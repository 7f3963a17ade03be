// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"parcelas/cmd/common"
	"parcelas/internal/config"
	"parcelas/internal/container"
	"parcelas/internal/ledger"
	"parcelas/internal/logging"
)

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	Backend    string
	DataDir    string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the dependencies of the running command. It is set
	// by PersistentPreRunE.
	AppContainer *container.Container

	// SharedFlags are the persistent flags of the root command
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "parcelas",
		Short: "Track installment purchases and their amortizations.",
		Long: `parcelas is a CLI tool to record purchases paid in installments
("compras parceladas"), register extra payments (amortizations) against them
and follow the outstanding balance and payoff progress of each purchase.

Data is stored locally; use the backup command to export or restore it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Welcome to parcelas!")
			cmd.Println("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Bootstrap()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Shutdown()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default searches $HOME/.parcelas, .parcelas and .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Backend, "backend", "", "Storage backend override (file, sqlite, memory)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Directory holding the stored purchases")
}

// Bootstrap loads the configuration, applies flag overrides and builds
// AppContainer.
func Bootstrap() error {
	config.LoadEnv()

	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	applyOverrides(cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

func applyOverrides(cfg *config.Config) {
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.Backend != "" {
		cfg.Storage.Backend = SharedFlags.Backend
	}
	if SharedFlags.DataDir != "" {
		cfg.Storage.Directory = SharedFlags.DataDir
	}
}

// Shutdown closes AppContainer if it was created.
func Shutdown() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close storage")
	}
	AppContainer = nil
}

// Ledger returns the ledger of the running command.
func Ledger() *ledger.Store {
	return AppContainer.GetLedger()
}

// Config returns the configuration of the running command.
func Config() *config.Config {
	return AppContainer.GetConfig()
}

// Formatter returns the display formatter for the running command.
func Formatter() common.Formatter {
	cfg := Config()
	return common.NewFormatter(cfg.Display.Currency, cfg.Display.DateFormat)
}

// Fail replaces a ledger error by the message shown to the user. The
// original error is logged at debug level.
func Fail(err error) error {
	Log.WithError(err).Debug("Command failed")
	return errors.New(common.UserMessage(err))
}
