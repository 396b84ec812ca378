package config

import (
	"os"
	"strconv"
)

const environmentENV = "ENVIRONMENT"

// loadDevelopmentConfig points a local run at a throwaway database with query
// logging on. The config file and environment variables still override it.
func loadDevelopmentConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	cfg.DatabaseDebug = true
	cfg.DatabaseFilePath = "./tmp/library.sqlite"
	cfg.ServerHost = "127.0.0.1"
}
