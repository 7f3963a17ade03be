package main

import (
	"fmt"
	"os"
	"strings"

	"parcelas/cmd/amortization"
	"parcelas/cmd/backup"
	"parcelas/cmd/purchase"
	"parcelas/cmd/report"
	"parcelas/cmd/root"
	"parcelas/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load .env before anything reads the environment
	config.LoadEnv()

	// 2. Configure the global log level before any logger is used
	configureLogLevelDirectly()

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(purchase.Cmd)
	root.Cmd.AddCommand(amortization.Cmd)
	root.Cmd.AddCommand(backup.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

// configureLogLevelDirectly sets the level of the standard logrus logger
// from PARCELAS_LOG_LEVEL and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("PARCELAS_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	err := root.Cmd.Execute()
	root.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
