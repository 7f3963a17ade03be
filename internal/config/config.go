// Package config loads the .env file, environment variables and the viper
// configuration file.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set are kept. It
// returns the file that was loaded, or "" when none was.
func LoadEnv() string {
	var loaded string
	once.Do(func() {
		loaded = loadEnvFile()
	})
	return loaded
}

func loadEnvFile() string {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try the parent directory (project root)
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return ""
		}
	}
	if err := godotenv.Load(envFile); err != nil {
		return ""
	}
	return envFile
}
